package bus

// Unauthenticated is raised whenever the remote service rejects the stored
// credential, or another process removed it.
type Unauthenticated struct {
	// Path of the request that was rejected; empty when the signal did not
	// come from an HTTP response.
	Path   string
	Status int
	// Source names the component that raised the signal, for logs.
	Source string
}
