package export

import (
	"fmt"

	apperrors "github.com/vachan-cat/cattrans/internal/errors"
	"github.com/vachan-cat/cattrans/internal/model"
)

// Format is one of the export formats spec.md §6 names.
type Format string

const (
	FormatUSFM      Format = "usfm"
	FormatPlainText Format = "plaintext"
	FormatAlignment Format = "alignment"
)

// AlignmentParams carries the extra fields BuildAlignment needs beyond the
// sentence batch every other format takes alone.
type AlignmentParams struct {
	SrcLangCode, SrcLangName string
	TrgLangCode, TrgLangName string
	Modified                 int64
}

// Export dispatches to the format-specific renderer by name, the single
// entry point a caller that only knows the requested doc type (rather than
// which Go function implements it) can use. An unrecognized format is a
// TypeError-class (CodeInvalidArg) error.
func Export(format Format, sentences []model.Sentence, bookCode BookCodeLookup, alignment AlignmentParams) (any, error) {
	switch format {
	case FormatUSFM:
		if bookCode == nil {
			return nil, apperrors.New(apperrors.CodeInvalidArg, "usfm export requires a book code lookup")
		}
		return USFM(sentences, bookCode)
	case FormatPlainText:
		return PlainText(sentences), nil
	case FormatAlignment:
		return BuildAlignment(sentences, alignment.SrcLangCode, alignment.SrcLangName, alignment.TrgLangCode, alignment.TrgLangName, alignment.Modified), nil
	default:
		return nil, apperrors.New(apperrors.CodeInvalidArg, fmt.Sprintf("unsupported export format %q", format))
	}
}
