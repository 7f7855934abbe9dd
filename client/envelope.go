package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/LovationAdmin/wealth-sync/models"
	"github.com/LovationAdmin/wealth-sync/utils"
)

// DecodeEnvelope validates and unwraps the {success, message, data, errors}
// envelope. It returns data unchanged on success.
func DecodeEnvelope(status int, body []byte) (json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, NewMalformedError(fmt.Errorf("status %d: body is not a JSON object", status))
	}

	var env models.RawEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, NewMalformedError(fmt.Errorf("status %d: decode envelope: %w", status, err))
	}
	if env.Success == nil {
		return nil, NewMalformedError(fmt.Errorf("status %d: envelope missing success", status))
	}
	if env.Message == nil {
		return nil, NewMalformedError(fmt.Errorf("status %d: envelope missing message", status))
	}

	if !*env.Success || status < 200 || status > 299 {
		var fields utils.FieldErrors
		if len(env.Errors) > 0 {
			fields = utils.FieldErrors(env.Errors)
		}
		return nil, NewRejectedError(status, *env.Message, fields)
	}

	if isNull(env.Data) {
		return nil, nil
	}
	return env.Data, nil
}

// DecodeData decodes envelope data into T, reporting malformed payloads.
func DecodeData[T any](data json.RawMessage) (T, error) {
	var out T
	if isNull(data) {
		return out, NewMalformedError(errors.New("response data is empty"))
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, NewMalformedError(fmt.Errorf("decode data: %w", err))
	}
	return out, nil
}

func isNull(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
