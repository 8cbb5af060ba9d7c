package models

import "fmt"

// EditPath адрес, открывающий форму редактирования записи (POST)
func (k Kind) EditPath(id int64) string {
	return fmt.Sprintf("/api/forms/%s/%d", k, id)
}

// NewPath адрес, открывающий пустую форму (POST)
func (k Kind) NewPath() string {
	return fmt.Sprintf("/api/forms/%s/new", k)
}

// DeletePath адрес удаления записи (DELETE, с ?confirm=true)
func (k Kind) DeletePath(id int64) string {
	return fmt.Sprintf("/api/records/%s/%d", k, id)
}
