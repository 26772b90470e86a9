// Package repository реализует доступ к слотам хранилища по модели
// "прочитать список целиком — изменить — записать целиком".
// Атомарности между слотами нет: это свойство субстрата,
// унаследованное от исходной системы и скрытое за этим слоем.
//
// Повреждённое содержимое слота логируется и трактуется как пустой
// список: ошибка инфраструктуры никогда не роняет приложение.
package repository

import (
	"log/slog"

	"github.com/investwisepro/admin-console/internal/kv"
	"github.com/investwisepro/admin-console/internal/lib/sl"
)

// Storage инкапсулирует адаптер kv и реализует методы работы
// со всеми сущностями консоли.
type Storage struct {
	kv  kv.Store
	log *slog.Logger
}

// New создаёт Storage поверх переданного адаптера.
func New(store kv.Store, log *slog.Logger) *Storage {
	return &Storage{kv: store, log: log}
}

// logCorrupt фиксирует нечитаемый слот. Значение слота при этом
// трактуется как отсутствующее.
func (s *Storage) logCorrupt(op, key string, err error) {
	s.log.Warn("unreadable storage slot, treating as empty",
		sl.Op(op), slog.String("key", key), sl.Err(err))
}

// maxLogEntries ограничивает длину журналов активности.
const maxLogEntries = 1000
