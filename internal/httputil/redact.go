// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"errors"
	"net/url"
)

// redact rewrites the URL inside a *url.Error so the key-bearing request
// URL does not leak into log lines.
func redact(err error, reqURL, displayURL string) error {
	var ue *url.Error
	if displayURL == "" || displayURL == reqURL || !errors.As(err, &ue) {
		return err
	}
	return &url.Error{Op: ue.Op, URL: displayURL, Err: ue.Err}
}
