package mock

import "github.com/harshydav08/sitechat"

var _ sitechat.Converter = (*Converter)(nil)

// Converter is a mock implementation of sitechat.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
