// Package codec is the JSON encoder shared by the session blob and report output.
package codec

import (
	"fmt"

	"github.com/bytedance/sonic"
)

func Marshal(v any) ([]byte, error) {
	raw, err := sonic.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return raw, nil
}

func MarshalIndent(v any) ([]byte, error) {
	raw, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return raw, nil
}

func Unmarshal(raw []byte, v any) error {
	if err := sonic.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
