package models

// IntPtr returns a pointer to the given integer.
func IntPtr(i int) *int {
	return &i
}
