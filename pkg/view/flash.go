package view

type FlashKind string

const (
	FlashInfo    FlashKind = "info"
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

// CSSClass is used by the page templates to colour the banner.
func (f *Flash) CSSClass() string {
	if f == nil {
		return ""
	}
	return "flash flash-" + string(f.Kind)
}
