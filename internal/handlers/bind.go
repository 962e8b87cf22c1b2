package handlers

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
)

// bindStrict decodes the JSON body into dst, rejecting unrecognized
// fields. Gin's own binding tolerates extra fields, which the register
// contract forbids.
func bindStrict(c *gin.Context, dst any) error {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if decoder.More() {
		return errors.New("unexpected trailing data")
	}
	return nil
}
