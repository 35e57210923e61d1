package storage

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"golang.org/x/text/language"

	"github.com/akozadaev/go_branch_analytics/internal/collation"
	"github.com/akozadaev/go_branch_analytics/internal/models"
)

// ErrDuplicateRecord возвращается при повторной записи за тот же месяц филиала.
var ErrDuplicateRecord = errors.New("duplicate monthly record")

// ErrUnknownBranch возвращается при записи для отсутствующего филиала.
var ErrUnknownBranch = errors.New("unknown branch")

type recordKey struct {
	branchID int
	year     int
	month    int
}

// MemoryStorage хранит набор данных в памяти. Используется для фикстур,
// пакетной индексации без базы данных и тестов. Безопасен для конкурентного чтения.
type MemoryStorage struct {
	mu        sync.RWMutex
	districts map[int]models.District
	branches  map[int]models.Branch
	records   map[recordKey]models.MonthlyRecord
	nextID    int64
	order     *collation.Order
}

// MemoryOption настраивает MemoryStorage.
type MemoryOption func(*MemoryStorage)

// WithCollation задает локаль сортировки названий, по умолчанию английская.
func WithCollation(tag language.Tag) MemoryOption {
	return func(ms *MemoryStorage) { ms.order = collation.New(tag) }
}

// NewMemoryStorage создает пустое хранилище.
func NewMemoryStorage(opts ...MemoryOption) *MemoryStorage {
	ms := &MemoryStorage{
		districts: make(map[int]models.District),
		branches:  make(map[int]models.Branch),
		records:   make(map[recordKey]models.MonthlyRecord),
		order:     collation.New(language.English),
	}
	for _, opt := range opts {
		opt(ms)
	}
	return ms
}

// Dataset описывает JSON-файл с набором данных.
type Dataset struct {
	Districts []models.District      `json:"districts"`
	Branches  []models.Branch        `json:"branches"`
	Records   []models.MonthlyRecord `json:"records"`
}

// LoadMemoryStorage читает набор данных из JSON-файла.
func LoadMemoryStorage(path string, opts ...MemoryOption) (*MemoryStorage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	var dataset Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}

	ms := NewMemoryStorage(opts...)
	if err := ms.Load(dataset); err != nil {
		return nil, err
	}
	return ms, nil
}

// Load добавляет районы, филиалы и записи набора данных.
func (ms *MemoryStorage) Load(dataset Dataset) error {
	for _, d := range dataset.Districts {
		ms.AddDistrict(d)
	}
	for _, b := range dataset.Branches {
		ms.AddBranch(b)
	}
	for _, rec := range dataset.Records {
		if err := ms.AddRecord(rec); err != nil {
			return err
		}
	}
	return nil
}

// AddDistrict добавляет или заменяет район.
func (ms *MemoryStorage) AddDistrict(d models.District) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.districts[d.ID] = d
}

// AddBranch добавляет или заменяет филиал.
func (ms *MemoryStorage) AddBranch(b models.Branch) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.branches[b.ID] = b
}

// AddRecord добавляет месячную запись. Пара (филиал, год, месяц) уникальна.
func (ms *MemoryStorage) AddRecord(rec models.MonthlyRecord) error {
	if rec.Month < 1 || rec.Month > 12 {
		return fmt.Errorf("invalid month %d for branch %d", rec.Month, rec.BranchID)
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.branches[rec.BranchID]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBranch, rec.BranchID)
	}
	key := recordKey{branchID: rec.BranchID, year: rec.Year, month: rec.Month}
	if _, ok := ms.records[key]; ok {
		return fmt.Errorf("%w: branch %d %04d-%02d", ErrDuplicateRecord, rec.BranchID, rec.Year, rec.Month)
	}

	if rec.ID == 0 {
		ms.nextID++
		rec.ID = ms.nextID
	} else if rec.ID > ms.nextID {
		ms.nextID = rec.ID
	}
	ms.records[key] = rec
	return nil
}

// FetchDistricts возвращает районы, отсортированные по названию в порядке сопоставления.
func (ms *MemoryStorage) FetchDistricts(ctx context.Context) ([]models.District, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()

	districts := make([]models.District, 0, len(ms.districts))
	for _, d := range ms.districts {
		districts = append(districts, d)
	}
	slices.SortFunc(districts, func(a, b models.District) int {
		return cmp.Or(ms.order.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return districts, nil
}

// FetchBranches возвращает филиалы района, отсортированные по названию.
func (ms *MemoryStorage) FetchBranches(ctx context.Context, districtID int) ([]models.Branch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()

	branches := make([]models.Branch, 0, len(ms.branches))
	for _, b := range ms.branches {
		if districtID != 0 && b.DistrictID != districtID {
			continue
		}
		branches = append(branches, b)
	}
	slices.SortFunc(branches, func(a, b models.Branch) int {
		return cmp.Or(ms.order.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return branches, nil
}

// matchRecord проверяет запись по району, филиалу и окну. Вызывается под блокировкой.
func (ms *MemoryStorage) matchRecord(rec models.MonthlyRecord, districtID, branchID int, window *models.Window) bool {
	if branchID != 0 && rec.BranchID != branchID {
		return false
	}
	if districtID != 0 && ms.branches[rec.BranchID].DistrictID != districtID {
		return false
	}
	return window == nil || window.Contains(rec.Index())
}

// FetchMonthlyRecords возвращает записи в порядке (год, месяц, филиал).
func (ms *MemoryStorage) FetchMonthlyRecords(ctx context.Context, q models.RecordQuery) ([]models.MonthlyRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()

	records := []models.MonthlyRecord{}
	for _, rec := range ms.records {
		if ms.matchRecord(rec, q.DistrictID, q.BranchID, q.Window) {
			records = append(records, rec)
		}
	}
	slices.SortFunc(records, func(a, b models.MonthlyRecord) int {
		return cmp.Or(cmp.Compare(a.Index(), b.Index()), cmp.Compare(a.BranchID, b.BranchID))
	})
	return records, nil
}

// MaxMonthIndex возвращает последний месяц с данными в области.
func (ms *MemoryStorage) MaxMonthIndex(ctx context.Context, districtID, branchID int) (models.MonthIndex, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var (
		maxIndex models.MonthIndex
		found    bool
	)
	for _, rec := range ms.records {
		if !ms.matchRecord(rec, districtID, branchID, nil) {
			continue
		}
		if idx := rec.Index(); !found || idx > maxIndex {
			maxIndex, found = idx, true
		}
	}
	return maxIndex, found, nil
}
