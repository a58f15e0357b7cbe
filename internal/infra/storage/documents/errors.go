package documents

import "errors"

var (
	// ErrNotFound возвращается, когда документа с ключом нет
	ErrNotFound = errors.New("documents: document not found")

	// ErrVersionConflict возвращается, когда документ изменился с момента чтения
	ErrVersionConflict = errors.New("documents: version conflict")

	// ErrSubscribe возвращается, когда не удалось подписаться на изменения
	ErrSubscribe = errors.New("documents: subscribe failed")
)
