package model

// User is an individual account in the user partition.
type User struct {
	PHID     string
	UserName string
}

// Project is a group in the project partition; referenced by group review
// requests.
type Project struct {
	PHID string
	Name string
}

// RepositoryURI maps a repository handle to its canonical clone URI.
type RepositoryURI struct {
	RepositoryPHID string
	URI            string
}
