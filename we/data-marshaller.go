package we

import (
	"fmt"
	"reflect"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const JSONEncoding = "application/json"

type InvalidEncodingError struct {
	Expected string
	Actual   string
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("expected encoding %s, got %s", e.Expected, e.Actual)
}

func InvalidEncoding(expected string, actual string) error {
	return &InvalidEncodingError{
		Expected: expected,
		Actual:   actual,
	}
}

func MarshalToData(event any) (Data, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return Data{}, err
	}

	return Data{
		Encoding: JSONEncoding,
		Data:     data,
	}, nil
}

func UnmarshalFromData(data Data, value any) error {
	if err := checkTarget(value); err != nil {
		return err
	}

	if data.Encoding != JSONEncoding {
		return InvalidEncoding(JSONEncoding, data.Encoding)
	}

	return errors.Wrap(json.Unmarshal(data.Data, value), "failed to decode event data")
}

func checkTarget(value any) error {
	if value == nil {
		return errors.New("decode target must be a non-nil pointer")
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Ptr {
		return errors.Errorf("decode target must be a pointer, not %s", rv.Kind())
	}

	if rv.IsNil() {
		return errors.New("decode target must be a non-nil pointer")
	}

	return nil
}
