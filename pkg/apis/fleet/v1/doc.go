// Package v1 contains the wire types of the EV fleet operations API.
//
// Every entity is owned by the remote API. Values held by the console are transient
// copies of the last confirmed server response. Each entity type embeds a *Spec type
// holding the fields a client may submit; the Spec doubles as the creation-form draft.
package v1
