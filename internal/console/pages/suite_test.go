package pages_test

import (
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/autopeer-io/fleetconsole/internal/fakeapi"
	"github.com/autopeer-io/fleetconsole/pkg/rest"
)

func TestPages(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Pages Suite")
}

// startAPI serves a fresh fake fleet API for the current spec.
func startAPI() (*fakeapi.Server, rest.Client) {
	api := fakeapi.New()
	srv := httptest.NewServer(api)
	DeferCleanup(srv.Close)

	client, err := rest.NewClient(&rest.ClientConfig{BaseURL: srv.URL + fakeapi.PathPrefix})
	Expect(err).NotTo(HaveOccurred())
	return api, client
}
