package errors

import (
	"fmt"
	"net/http"
)

// Empty filter results are reported as a 404 naming the queried value,
// distinguishing "no data matches" from an empty success payload.

func NoTasksWithStatus(status string) *Exception {
	return &Exception{
		Message:    fmt.Sprintf("no tasks found with status %q", status),
		StatusCode: http.StatusNotFound,
	}
}

func NoTasksWithPriority(priority string) *Exception {
	return &Exception{
		Message:    fmt.Sprintf("no tasks found with priority %q", priority),
		StatusCode: http.StatusNotFound,
	}
}
