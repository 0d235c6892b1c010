package grid

import (
	jj "github.com/cloudfoundry/jibber_jabber"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is used if the user's locale cannot be detected.
var DefaultLocale = language.AmericanEnglish

// LocaleFromEnvironment detects the user's locale from the environment
// (LC_ALL, LANG etc.).
func LocaleFromEnvironment() language.Tag {
	userLocale, err := jj.DetectIETF()
	if err != nil {
		tracer().Debugf("cannot detect user locale: %v", err)
		tracer().Infof("grid uses default locale %v", DefaultLocale)
		return DefaultLocale
	}
	tag, err := language.Parse(userLocale)
	if err != nil {
		tracer().Infof("unusable user locale %q, using %v", userLocale, DefaultLocale)
		return DefaultLocale
	}
	tracer().Debugf("grid detected user locale %v", tag)
	return tag
}

// StatusLine formats the row counter of a view:
//
//	Rows: 12 of 3,791   (filters active)
//	Rows: 3,791         (no filter)
//
// Numbers are grouped according to the printer's locale.
func StatusLine(p *message.Printer, matched, total int, filtered bool) string {
	if filtered {
		return p.Sprintf("Rows: %d of %d", matched, total)
	}
	return p.Sprintf("Rows: %d", total)
}
