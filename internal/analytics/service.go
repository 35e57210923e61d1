package analytics

import (
	"cmp"
	"context"
	"log"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/akozadaev/go_branch_analytics/internal/models"
	"github.com/akozadaev/go_branch_analytics/internal/observability"
)

// DataSource предоставляет ядру данные. Реализация обязана приводить
// отсутствующие значения детализации к нулю.
type DataSource interface {
	// FetchDistricts возвращает районы, упорядоченные по названию.
	FetchDistricts(ctx context.Context) ([]models.District, error)
	// FetchBranches возвращает филиалы района; districtID = 0 означает все районы.
	FetchBranches(ctx context.Context, districtID int) ([]models.Branch, error)
	FetchMonthlyRecords(ctx context.Context, query models.RecordQuery) ([]models.MonthlyRecord, error)
	// MaxMonthIndex возвращает последний месяц с данными в области; false, если данных нет.
	MaxMonthIndex(ctx context.Context, districtID, branchID int) (models.MonthIndex, bool, error)
}

const (
	opFetchDistricts = "fetch districts"
	opFetchBranches  = "fetch branches"
	opFetchRecords   = "fetch monthly records"
	opMaxMonthIndex  = "max month index"
)

// Option настраивает Service.
type Option func(*Service)

// WithClock задаёт источник текущего времени для окна без данных.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithEngine задаёт движок рекомендаций.
func WithEngine(engine *Engine) Option {
	return func(s *Service) {
		s.engine = engine
	}
}

// WithLogger задаёт логгер сервиса.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// Service выполняет операции ядра: параллельно читает независимые данные,
// дожидается всех результатов и затем синхронно считает показатели.
// Service не хранит состояния между запросами.
type Service struct {
	source DataSource
	engine *Engine
	now    func() time.Time
	logger *log.Logger
}

// NewService создаёт Service поверх источника данных.
func NewService(source DataSource, opts ...Option) *Service {
	s := &Service{
		source: source,
		engine: NewEngine(language.English),
		now:    time.Now,
		logger: log.New(log.Writer(), "[analytics] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// fetchFailed оборачивает ошибку источника, учитывает её в метриках и логирует.
func (s *Service) fetchFailed(op string, err error) error {
	if err == nil {
		return nil
	}
	observability.RecordUpstreamFailure(op)
	s.logger.Printf("%s failed: %v", op, err)
	return fetchFailed(op, err)
}

// snapshot содержит данные первой фазы чтения.
type snapshot struct {
	districts []models.District
	branches  []models.Branch
	maxIndex  models.MonthIndex
	hasData   bool
}

// loadSnapshot параллельно читает районы, все филиалы и последний месяц с данными области.
func (s *Service) loadSnapshot(ctx context.Context, districtID, branchID int) (*snapshot, error) {
	var snap snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		districts, err := s.source.FetchDistricts(gctx)
		snap.districts = districts
		return s.fetchFailed(opFetchDistricts, err)
	})
	g.Go(func() error {
		branches, err := s.source.FetchBranches(gctx, 0)
		snap.branches = branches
		return s.fetchFailed(opFetchBranches, err)
	})
	g.Go(func() error {
		idx, ok, err := s.source.MaxMonthIndex(gctx, districtID, branchID)
		snap.maxIndex, snap.hasData = idx, ok
		return s.fetchFailed(opMaxMonthIndex, err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if snap.hasData {
		observability.RecordDataWatermark(snap.maxIndex)
	}
	return &snap, nil
}

func (s *Service) window(length int, snap *snapshot) models.Window {
	if snap.hasData {
		return ResolveWindow(length, &snap.maxIndex, s.now())
	}
	return ResolveWindow(length, nil, s.now())
}

func (s *Service) fetchRecords(ctx context.Context, query models.RecordQuery) ([]models.MonthlyRecord, error) {
	records, err := s.source.FetchMonthlyRecords(ctx, query)
	if err != nil {
		return nil, s.fetchFailed(opFetchRecords, err)
	}
	return records, nil
}

// ComputeDashboard рассчитывает итоги, помесячный ряд и детализацию для района
// и, опционально, одного филиала. При DistrictID = 0 анализ не выполняется.
func (s *Service) ComputeDashboard(ctx context.Context, req models.DashboardRequest) (*models.DashboardResult, error) {
	defer observability.ObserveComputation("dashboard", time.Now())

	snap, err := s.loadSnapshot(ctx, req.DistrictID, req.BranchID)
	if err != nil {
		return nil, err
	}
	window := s.window(req.WindowLength, snap)

	if req.DistrictID == 0 {
		return assembleDashboard(req, window, snap, nil, nil, models.BreakdownTotals{}), nil
	}

	records, err := s.fetchRecords(ctx, models.RecordQuery{
		DistrictID: req.DistrictID,
		BranchID:   req.BranchID,
		Window:     &window,
	})
	if err != nil {
		return nil, err
	}

	index := IndexBranches(snap.branches)
	scope := Scope{DistrictID: req.DistrictID, BranchID: req.BranchID}
	aggregate := Aggregate(records, index, scope, window)
	if aggregate.BranchCount > 0 && aggregate.TotalCapacity == 0 {
		s.logger.Printf("district %d branch %d: zero total capacity, utilization reported as 0", req.DistrictID, req.BranchID)
	}

	return assembleDashboard(req, window, snap, &aggregate,
		Series(records, index, scope, window),
		SumBreakdown(records, index, scope, window)), nil
}

// ComputeRecommendations формирует полный список рекомендаций области и
// применяет фильтр категории после классификации.
func (s *Service) ComputeRecommendations(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationsResult, error) {
	defer observability.ObserveComputation("recommendations", time.Now())

	if req.Category != "" && !slices.Contains(models.Categories, req.Category) {
		return nil, models.ErrUnknownCategory
	}

	snap, err := s.loadSnapshot(ctx, req.DistrictID, req.BranchID)
	if err != nil {
		return nil, err
	}
	window := s.window(req.WindowLength, snap)

	records, err := s.fetchRecords(ctx, models.RecordQuery{
		DistrictID: req.DistrictID,
		BranchID:   req.BranchID,
		Window:     &window,
	})
	if err != nil {
		return nil, err
	}

	full := s.recommend(records, snap, Scope{DistrictID: req.DistrictID, BranchID: req.BranchID}, window)
	observability.RecordRecommendations(full)

	return assembleRecommendations(req, window, snap, full), nil
}

// FullRecommendations возвращает полный неотфильтрованный список рекомендаций
// по всем районам за окно. Используется для индексации снимков.
func (s *Service) FullRecommendations(ctx context.Context, windowLength int) ([]models.Recommendation, models.Window, error) {
	result, err := s.ComputeRecommendations(ctx, models.RecommendationRequest{WindowLength: windowLength})
	if err != nil {
		return nil, models.Window{}, err
	}
	return result.Recommendations, result.Window, nil
}

func (s *Service) recommend(records []models.MonthlyRecord, snap *snapshot, scope Scope, window models.Window) []models.Recommendation {
	metrics := s.engine.CollectBranchMetrics(records, IndexBranches(snap.branches), snap.districts, scope, window)
	empty := DistrictsWithoutBranches(snap.districts, snap.branches, scope.DistrictID)
	slices.SortStableFunc(empty, func(a, b models.District) int { return s.engine.CompareNames(a.Name, b.Name) })

	recs := make([]models.Recommendation, 0, len(metrics)+len(empty))
	for _, m := range metrics {
		recs = append(recs, s.engine.ClassifyBranch(m))
	}
	for _, d := range empty {
		recs = append(recs, s.engine.ClassifyDistrict(d))
	}
	return recs
}

// ComputeDistrictSummary рассчитывает итоги каждого района с данными в общем окне.
// Районы упорядочены по числу филиалов с данными по убыванию, затем по названию.
func (s *Service) ComputeDistrictSummary(ctx context.Context, windowLength int) (*models.DistrictSummaryResult, error) {
	defer observability.ObserveComputation("district_summary", time.Now())

	snap, err := s.loadSnapshot(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	window := s.window(windowLength, snap)

	records, err := s.fetchRecords(ctx, models.RecordQuery{Window: &window})
	if err != nil {
		return nil, err
	}

	index := IndexBranches(snap.branches)
	entries := make([]models.DistrictSummaryEntry, 0, len(snap.districts))
	for _, d := range snap.districts {
		aggregate := Aggregate(records, index, Scope{DistrictID: d.ID}, window)
		if aggregate.RecordCount == 0 {
			continue
		}
		entries = append(entries, models.DistrictSummaryEntry{
			DistrictID:      d.ID,
			DistrictName:    d.Name,
			AggregateResult: aggregate,
		})
	}

	slices.SortFunc(entries, func(a, b models.DistrictSummaryEntry) int {
		return cmp.Or(
			cmp.Compare(b.BranchCount, a.BranchCount),
			s.engine.CompareNames(a.DistrictName, b.DistrictName),
		)
	})

	return &models.DistrictSummaryResult{Window: window, Districts: entries}, nil
}

// ComputeBranchMap возвращает помесячные показатели филиалов за весь период
// для отображения на карте.
func (s *Service) ComputeBranchMap(ctx context.Context, req models.BranchMapRequest) (*models.BranchMapResult, error) {
	defer observability.ObserveComputation("branch_map", time.Now())

	var (
		districts []models.District
		branches  []models.Branch
		records   []models.MonthlyRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		districts, err = s.source.FetchDistricts(gctx)
		return s.fetchFailed(opFetchDistricts, err)
	})
	g.Go(func() error {
		var err error
		branches, err = s.source.FetchBranches(gctx, 0)
		return s.fetchFailed(opFetchBranches, err)
	})
	g.Go(func() error {
		var err error
		records, err = s.source.FetchMonthlyRecords(gctx, models.RecordQuery{
			DistrictID: req.DistrictID,
			BranchID:   req.BranchID,
		})
		return s.fetchFailed(opFetchRecords, err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return assembleBranchMap(req, districts, branches, records, s.engine.CompareNames), nil
}

// ListDistricts возвращает справочник районов.
func (s *Service) ListDistricts(ctx context.Context) ([]models.District, error) {
	districts, err := s.source.FetchDistricts(ctx)
	if err != nil {
		return nil, s.fetchFailed(opFetchDistricts, err)
	}
	if districts == nil {
		districts = []models.District{}
	}
	return districts, nil
}

// ListBranches возвращает филиалы района; districtID = 0 означает все филиалы.
func (s *Service) ListBranches(ctx context.Context, districtID int) ([]models.Branch, error) {
	branches, err := s.source.FetchBranches(ctx, districtID)
	if err != nil {
		return nil, s.fetchFailed(opFetchBranches, err)
	}
	if branches == nil {
		branches = []models.Branch{}
	}
	return branches, nil
}
