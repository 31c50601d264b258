package employee

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSequence extracts the numeric suffix after the last '-' of an employee ID.
func ParseSequence(employeeID string) (int, bool) {
	idx := strings.LastIndex(employeeID, "-")
	if idx < 0 || idx == len(employeeID)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(employeeID[idx+1:])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// NextSequence returns the smallest positive integer not used by employeeIDs.
// Malformed IDs are ignored.
func NextSequence(employeeIDs []string) int {
	used := make(map[int]struct{}, len(employeeIDs))
	for _, id := range employeeIDs {
		if n, ok := ParseSequence(id); ok {
			used[n] = struct{}{}
		}
	}

	seq := 1
	for {
		if _, taken := used[seq]; !taken {
			return seq
		}
		seq++
	}
}

func DepartmentPrefix(department string) string {
	return strings.ToUpper(strings.TrimSpace(department))
}

// FormatEmployeeID renders DEPT-NNN. Sequences above 999 keep all their digits.
func FormatEmployeeID(department string, seq int) string {
	return fmt.Sprintf("%s-%03d", DepartmentPrefix(department), seq)
}
