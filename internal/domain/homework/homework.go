// internal/domain/homework/homework.go
package homework

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Keys of the review API payload.
const (
	KeyHomeworks    = "homeworks"
	KeyCurrentDate  = "current_date"
	KeyStatus       = "status"
	KeyHomeworkName = "homework_name"
)

// Status is a review status code reported by the API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// Verdicts maps every documented status to the text sent to the chat.
var Verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// CheckResponse verifies that resp is a mapping holding a list under "homeworks".
func CheckResponse(resp any) error {
	m, ok := resp.(map[string]any)
	if !ok {
		return &Error{Kind: KindType, Msg: fmt.Sprintf("response is %s, not a mapping", typeName(resp))}
	}
	hw, ok := m[KeyHomeworks]
	if !ok || hw == nil {
		return &Error{Kind: KindMissingKey, Key: KeyHomeworks, Msg: "response has no homeworks"}
	}
	if _, ok := hw.([]any); !ok {
		return &Error{Kind: KindType, Key: KeyHomeworks, Msg: fmt.Sprintf("homeworks is %s, not a list", typeName(hw))}
	}
	return nil
}

// ParseStatus renders the notification text for a single homework record.
func ParseStatus(record any) (string, error) {
	hw, ok := record.(map[string]any)
	if !ok {
		return "", &Error{Kind: KindType, Msg: fmt.Sprintf("homework is %s, not a mapping", typeName(record))}
	}

	status, err := stringField(hw, KeyStatus)
	if err != nil {
		return "", err
	}
	name, err := stringField(hw, KeyHomeworkName)
	if err != nil {
		return "", err
	}

	verdict, ok := Verdicts[Status(status)]
	if !ok {
		return "", &Error{Kind: KindUnknownStatus, Key: KeyStatus, Msg: fmt.Sprintf("status %q of %q", status, name)}
	}
	return fmt.Sprintf(`Changed status of homework review "%s". %s`, name, verdict), nil
}

// CurrentDate extracts the "current_date" cursor from a validated response.
func CurrentDate(resp map[string]any) (int64, error) {
	raw, ok := resp[KeyCurrentDate]
	if !ok || raw == nil {
		return 0, &Error{Kind: KindMissingKey, Key: KeyCurrentDate, Msg: "response has no current_date"}
	}

	switch v := raw.(type) {
	case json.Number:
		ts, err := v.Int64()
		if err != nil {
			return 0, &Error{Kind: KindType, Key: KeyCurrentDate, Msg: "current_date is not an integer", Err: err}
		}
		return ts, nil
	case float64:
		if v != float64(int64(v)) {
			return 0, &Error{Kind: KindType, Key: KeyCurrentDate, Msg: "current_date is not an integer"}
		}
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		ts, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, &Error{Kind: KindType, Key: KeyCurrentDate, Msg: "current_date is not an integer", Err: err}
		}
		return ts, nil
	default:
		return 0, &Error{Kind: KindType, Key: KeyCurrentDate, Msg: fmt.Sprintf("current_date is %s", typeName(raw))}
	}
}

func stringField(hw map[string]any, key string) (string, error) {
	raw, ok := hw[key]
	if !ok || raw == nil {
		return "", &Error{Kind: KindMissingKey, Key: key, Msg: "homework has no " + key}
	}
	s, ok := raw.(string)
	if !ok {
		return "", &Error{Kind: KindType, Key: key, Msg: fmt.Sprintf("%s is %s, not a string", key, typeName(raw))}
	}
	return s, nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "a mapping"
	case []any:
		return "a list"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case json.Number, float64, int, int64:
		return "a number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
