package printing

import "strings"

// Engine names a PDF drawing engine
type Engine string

const (
	EngineFPDF        Engine = "fpdf"
	EngineChromedp    Engine = "chromedp"
	EngineWkhtmltopdf Engine = "wkhtmltopdf"
)

// ParseEngine normalizes an engine name; the empty string selects fpdf
func ParseEngine(name string) (Engine, error) {
	e := Engine(strings.ToLower(strings.TrimSpace(name)))
	if e == "" {
		return EngineFPDF, nil
	}
	if !e.IsValid() {
		return "", NewRenderError(ErrCodeUnknownEngine, "unknown render engine: "+name, nil)
	}
	return e, nil
}

// IsValid reports whether e is a known engine
func (e Engine) IsValid() bool {
	switch e {
	case EngineFPDF, EngineChromedp, EngineWkhtmltopdf:
		return true
	}
	return false
}

// String returns the string representation of Engine
func (e Engine) String() string {
	return string(e)
}

// EngineConfig carries the per-engine settings; only the selected engine's
// section is read
type EngineConfig struct {
	FPDF        FPDFConfig
	Chromedp    ChromedpConfig
	Wkhtmltopdf WkhtmltopdfConfig
}

// NewRenderer builds the renderer for engine
func NewRenderer(engine Engine, cfg EngineConfig) (PDFRenderer, error) {
	switch engine {
	case EngineFPDF, "":
		return NewFPDFRenderer(&cfg.FPDF), nil
	case EngineChromedp:
		return NewChromedpRenderer(&cfg.Chromedp)
	case EngineWkhtmltopdf:
		return NewWkhtmltopdfRenderer(&cfg.Wkhtmltopdf)
	default:
		return nil, NewRenderError(ErrCodeUnknownEngine, "unknown render engine: "+string(engine), nil)
	}
}
