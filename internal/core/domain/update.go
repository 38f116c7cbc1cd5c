package domain

// UpdateInfo describes an application update staged for installation.
type UpdateInfo struct {
	Version string  `json:"version"`
	Body    *string `json:"body"`
}
