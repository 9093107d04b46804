package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// Error codes shared by the dataset and summarizer layers.
const (
	CodeNotFound      = "NotFound"
	CodeEmptyFile     = "EmptyFile"
	CodeMalformedRow  = "MalformedRow"
	CodeUnknownColumn = "UnknownColumn"
	CodeNotNumeric    = "NotNumeric"
	CodeBadPlan       = "BadPlan"
	CodeBadFilter     = "BadFilter"
)

// Err is a coded error carrying enough context (path, line, column)
// to diagnose a data-shape problem without re-running anything.
type Err struct {
	Code  string
	Title string
	Data  map[string]any
}

func (e Err) Error() string {
	fields := []string{
		e.Code + ": " + e.Title,
	}

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := e.Data[k]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		fields = append(fields, fmt.Sprintf("%s = %+v", k, v))
	}

	return strings.Join(fields, "; ")
}

// ErrIs reports whether err is an Err with the given code.
func ErrIs(err error, code string) bool {
	e, ok := err.(Err)
	if !ok {
		return false
	}

	return e.Code == code
}

func NotFoundErr(path string) error {
	return Err{
		Code:  CodeNotFound,
		Title: "dataset file does not exist",
		Data:  map[string]any{"path": path},
	}
}

func EmptyFileErr(path string) error {
	return Err{
		Code:  CodeEmptyFile,
		Title: "dataset file has no header line",
		Data:  map[string]any{"path": path},
	}
}

func MalformedRowErr(path string, line int, cause error) error {
	return Err{
		Code:  CodeMalformedRow,
		Title: "row does not match the header",
		Data:  map[string]any{"path": path, "line": line, "cause": cause},
	}
}

func UnknownColumnErr(column string, header []string) error {
	return Err{
		Code:  CodeUnknownColumn,
		Title: "column is not present in the dataset header",
		Data:  map[string]any{"column": column, "header": strings.Join(header, ",")},
	}
}

func NotNumericErr(column, value string, record int) error {
	return Err{
		Code:  CodeNotNumeric,
		Title: "value cannot be parsed as a number",
		Data:  map[string]any{"column": column, "value": value, "record": record},
	}
}

func BadPlanErr(title string, data map[string]any) error {
	return Err{
		Code:  CodeBadPlan,
		Title: title,
		Data:  data,
	}
}

func BadFilterErr(title string, data map[string]any) error {
	return Err{
		Code:  CodeBadFilter,
		Title: title,
		Data:  data,
	}
}
