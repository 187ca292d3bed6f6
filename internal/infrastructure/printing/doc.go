// Package printing draws laid out shipping labels into PDF bytes.
//
// This package contains:
// - PDFRenderer interface implemented by every engine
// - FPDFRenderer, the default engine, drawing in memory with the PDF core fonts
// - HTMLComposer, turning a label document into absolutely positioned HTML
// - ChromedpRenderer printing that HTML through headless Chrome
// - WkhtmltopdfRenderer printing that HTML with the wkhtmltopdf command-line tool
//
// Example usage:
//
//	renderer, err := printing.NewRenderer(printing.EngineFPDF, printing.EngineConfig{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer renderer.Close()
//
//	doc, err := label.Compose(record)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := renderer.Render(ctx, &printing.RenderRequest{Document: doc})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Generated PDF: %d bytes\n", len(result.PDFData))
package printing
