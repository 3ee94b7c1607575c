// Copyright (c) 2025 IGVF Catalog
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	stderrors "errors"
	"fmt"

	"igvfcatalog/cli/internal/errors"
)

// remoteError is satisfied by errors a tRPC procedure reported.
type remoteError interface {
	error
	CodeName() string
	Reason() string
}

var kindLabels = map[errors.Kind]string{
	errors.TransportFailed: "cannot reach catalog",
	errors.RemoteFailed:    "catalog error",
	errors.DecodeFailed:    "unexpected response",
	errors.InvalidInput:    "invalid input",
}

// PresentError formats an error for user display with masking. Kinded errors
// are labelled by kind; remote errors also show the tRPC code and the
// procedure path.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	var e *errors.E
	if !stderrors.As(err, &e) {
		return fmt.Sprintf("%s: %s", context, Mask(err.Error()))
	}
	label, ok := kindLabels[e.Kind]
	if !ok {
		label = string(e.Kind)
	}

	var remote remoteError
	if e.Kind == errors.RemoteFailed && stderrors.As(err, &remote) {
		return fmt.Sprintf("%s: %s [%s] %s: %s", context, label, remote.CodeName(), e.Message, Mask(remote.Reason()))
	}

	detail := e.Message
	if e.Err != nil {
		detail = fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", context, label, Mask(detail))
}
