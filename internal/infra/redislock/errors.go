package redislock

import "errors"

var (
	// ErrEmptyAddr возвращается, если адрес Redis не задан
	ErrEmptyAddr = errors.New("redislock: addr is empty")

	// ErrConnect возвращается, если Redis не отвечает
	ErrConnect = errors.New("redislock: failed to connect")

	// ErrAcquire возвращается при ошибке Redis во время захвата блокировки
	ErrAcquire = errors.New("redislock: failed to acquire lock")

	// ErrRelease возвращается при ошибке Redis во время освобождения блокировки
	ErrRelease = errors.New("redislock: failed to release lock")
)
