package ocr

import "fmt"

// ProviderConfig selects and configures an OCR provider
type ProviderConfig struct {
	Name              string // google, ocrspace, tesseract, gosseract
	Vision            VisionConfig
	OCRSpaceAPIKey    string
	OCRSpaceLanguage  string // OCR.space codes ("eng", "ger"), not Tesseract traineddata names
	TesseractLanguage string
}

// NewProvider builds the provider named in cfg; unknown names fall back to Google Cloud Vision
func NewProvider(cfg ProviderConfig) (Provider, error) {
	switch cfg.Name {
	case "ocrspace":
		if cfg.OCRSpaceAPIKey == "" {
			return nil, fmt.Errorf("OCR_SPACE_API_KEY is required for the ocrspace provider")
		}
		return NewOCRSpaceProvider(cfg.OCRSpaceAPIKey, cfg.OCRSpaceLanguage), nil
	case "tesseract":
		return NewTesseractProvider(cfg.TesseractLanguage), nil
	case "gosseract":
		p, err := NewGosseractProvider(cfg.TesseractLanguage)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return NewGoogleVisionProvider(cfg.Vision), nil
	}
}
