// Package routes provides shared API route constants so client code and
// tests agree on endpoint paths.
package routes

// Fixed paths.
const (
	// Projects lists the authenticated user's projects (GET) and creates
	// new ones (POST).
	Projects = "/projects/"

	// AuthToken exchanges email/password credentials for an API token.
	AuthToken = "/user/auth-token/" // #nosec G101 -- route path, not a credential
)

// Parameterized paths; fill with fmt.Sprintf and the project ID.
const (
	// Project returns one project.
	Project = "/projects/%s/"

	// ProjectAcquire takes the project's edit mutex.
	ProjectAcquire = "/projects/%s/acquire/"

	// ProjectRelease releases the project's edit mutex.
	ProjectRelease = "/projects/%s/release/"

	// ProjectUploadTML uploads an Ariane TML revision (multipart).
	ProjectUploadTML = "/projects/%s/upload/ariane_tml/"

	// ProjectDownloadTML downloads the project's current TML revision.
	ProjectDownloadTML = "/projects/%s/download/ariane_tml/"
)
