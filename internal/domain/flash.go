package domain

// FlashCategory classifies a transient status message.
type FlashCategory string

const (
	FlashSuccess FlashCategory = "success"
	FlashInfo    FlashCategory = "info"
	FlashError   FlashCategory = "error"
)

// Flash is the single user-visible outcome of a request.
type Flash struct {
	Category FlashCategory `json:"category"`
	Message  string        `json:"message"`
}
