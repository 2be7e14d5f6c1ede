package model

import "errors"

// Базовые ошибки доменного слоя. Сервисы оборачивают их через %w,
// добавляя контекст; вызывающий код различает категории errors.Is.
var (
	// ErrValidation входные данные не прошли проверку, до хранилища не дошли
	ErrValidation = errors.New("validation failed")

	// ErrNotFound запрошенная сущность не существует
	ErrNotFound = errors.New("not found")

	// ErrStorage хранилище вернуло ошибку, операция не выполнена
	ErrStorage = errors.New("storage failure")
)
