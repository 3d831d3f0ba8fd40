package templates

import (
	"time"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04 MST")
	}
}

func WithCompany(company, app string) Option {
	return func(d *EmailData) {
		d.CompanyName = company
		d.AppName = app
	}
}

// NewBaseEmailData fills the common fields, then applies options
func NewBaseEmailData(typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:  name,
		Email: email,
		Type:  typ,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewConfirmAccountData(name, email, confirmURL, code string, opts ...Option) EmailData {
	d := NewBaseEmailData(ConfirmAccount, name, email, opts...)
	d.ConfirmURL = confirmURL
	d.Code = code
	return d
}

func NewAccountConfirmedData(name, email string, opts ...Option) EmailData {
	return NewBaseEmailData(AccountConfirmed, name, email, opts...)
}
