// internal/server/schema.go
package server

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	cerrors "torqueup-chat/internal/common/errors"
)

const chatRequestSchema = `{
	"type": "object",
	"required": ["message"],
	"properties": {
		"message": {"type": "string", "minLength": 1},
		"cars": {
			"type": "array",
			"items": {"type": "object"}
		},
		"context": {
			"type": "object",
			"properties": {
				"previousMessages": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"text": {"type": "string"},
							"isUser": {"type": "boolean"}
						}
					}
				}
			}
		}
	}
}`

var chatSchemaLoader = gojsonschema.NewStringLoader(chatRequestSchema)

// validateChatRequest checks the raw request body against the chat schema
// before it is decoded into typed structs.
func validateChatRequest(body []byte) error {
	result, err := gojsonschema.Validate(chatSchemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return cerrors.NewInvalidChatRequestError("request body is not valid JSON")
	}
	if !result.Valid() {
		descs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			descs[i] = desc.String()
		}
		return cerrors.NewInvalidChatRequestError(strings.Join(descs, "; "))
	}
	return nil
}
