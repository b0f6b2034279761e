package v1

// DriverSpec holds the client-submittable fields of a Driver.
type DriverSpec struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	LicenseID string `json:"licenseId"`

	// Active reports whether the driver can be assigned to trips.
	Active bool `json:"active"`
}

// Driver is a person allowed to operate fleet vehicles.
type Driver struct {
	ID int64 `json:"id"`

	DriverSpec `json:",inline"`
}

func (d Driver) Identity() int64 { return d.ID }

// NewDriverSpec returns the empty creation form. New drivers start active.
func NewDriverSpec() DriverSpec {
	return DriverSpec{Active: true}
}

// SetField assigns a form input to the named field. The active flag takes the
// checked state of a checkbox, spelled as any value strconv.ParseBool accepts.
func (s *DriverSpec) SetField(name, value string) error {
	switch name {
	case "name":
		s.Name = value
	case "phone":
		s.Phone = value
	case "licenseId":
		s.LicenseID = value
	case "active":
		return setBool(&s.Active, name, value)
	default:
		return unknownField("driver", name)
	}
	return nil
}
