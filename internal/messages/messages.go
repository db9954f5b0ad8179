// Package messages renders preprocessor errors as human readable text.
package messages

import (
	_ "embed" // For go:embed.
	"errors"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"

	"github.com/vlogpp/vlogpp"
	"github.com/vlogpp/vlogpp/lexer"
)

//go:embed active.en.yaml
var activeEN []byte

// Catalog of error messages in one or more languages.
type Catalog struct {
	localizer *i18n.Localizer
}

var defaultCatalog = MustNew()

// New creates a Catalog preferring the given languages, in order. English
// is used for anything else.
func New(langs ...string) (*Catalog, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	if _, err := bundle.ParseMessageFileBytes(activeEN, "active.en.yaml"); err != nil {
		return nil, err
	}
	return &Catalog{localizer: i18n.NewLocalizer(bundle, langs...)}, nil
}

// MustNew creates a Catalog or panics.
func MustNew(langs ...string) *Catalog {
	c, err := New(langs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Format err using the default catalog.
func Format(err error) string {
	return defaultCatalog.Format(err)
}

// Format err as "<pos>: <code>: <message>". Errors that are not
// *vlogpp.Error, or that have no message, are formatted with Error().
func (c *Catalog) Format(err error) string {
	var perr *vlogpp.Error
	if !errors.As(err, &perr) {
		return err.Error()
	}
	msg, lerr := c.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    string(perr.Code),
		TemplateData: perr.Data(),
	})
	if lerr != nil {
		return err.Error()
	}
	return lexer.FormatError(perr.Pos, string(perr.Code)+": "+msg)
}

// Has returns true if the catalog has a message for code.
func (c *Catalog) Has(code vlogpp.Code) bool {
	_, err := c.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    string(code),
		TemplateData: (&vlogpp.Error{Code: code}).Data(),
	})
	return err == nil
}
