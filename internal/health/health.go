package health

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Status представляет статус компонента
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// ErrNotReady возвращается Ready, если хотя бы одна обязательная проверка не прошла.
var ErrNotReady = errors.New("shop is not ready")

// Check представляет результат проверки одного компонента
type Check struct {
	Name     string
	Status   Status
	Message  string
	Duration time.Duration
}

// Report агрегирует проверки всех зарегистрированных компонентов.
type Report struct {
	Status    Status
	CheckedAt time.Time
	Checks    map[string]Check
	Version   string
}

// Checker интерфейс для проверки здоровья компонента
type Checker interface {
	Check(ctx context.Context) Check
}

// Probe выполняет стартовые проверки зависимостей CLI (хранилище, брокер).
type Probe struct {
	mu       sync.RWMutex
	checkers map[string]Checker
	version  string
}

// NewProbe создаёт набор проверок для указанной версии сборки.
func NewProbe(version string) *Probe {
	return &Probe{
		checkers: make(map[string]Checker),
		version:  version,
	}
}

// RegisterChecker регистрирует проверку компонента
func (p *Probe) RegisterChecker(name string, checker Checker) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.checkers[name] = checker
}

// Run выполняет все проверки. Unhealthy любой проверки делает отчёт unhealthy,
// degraded понижает только healthy.
func (p *Probe) Run(ctx context.Context) Report {
	p.mu.RLock()
	checkers := make(map[string]Checker, len(p.checkers))
	for k, v := range p.checkers {
		checkers[k] = v
	}
	p.mu.RUnlock()

	checks := make(map[string]Check, len(checkers))
	overall := StatusHealthy
	for name, checker := range checkers {
		check := checker.Check(ctx)
		checks[name] = check

		if check.Status == StatusUnhealthy {
			overall = StatusUnhealthy
		} else if check.Status == StatusDegraded && overall == StatusHealthy {
			overall = StatusDegraded
		}
	}

	return Report{
		Status:    overall,
		CheckedAt: time.Now().UTC(),
		Checks:    checks,
		Version:   p.version,
	}
}

// Ready возвращает ErrNotReady с перечнем упавших проверок, если отчёт unhealthy.
func (p *Probe) Ready(ctx context.Context) (Report, error) {
	report := p.Run(ctx)
	if report.Status != StatusUnhealthy {
		return report, nil
	}

	names := make([]string, 0, len(report.Checks))
	for name := range report.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		check := report.Checks[name]
		if check.Status == StatusUnhealthy {
			errs = append(errs, fmt.Errorf("%s: %s", name, check.Message))
		}
	}
	return report, fmt.Errorf("%w: %w", ErrNotReady, errors.Join(errs...))
}

// SimpleChecker проверка на основе функции
type SimpleChecker struct {
	name     string
	optional bool
	checkFn  func(ctx context.Context) error
}

// NewSimpleChecker создаёт обязательную проверку: ошибка даёт unhealthy.
func NewSimpleChecker(name string, checkFn func(ctx context.Context) error) *SimpleChecker {
	return &SimpleChecker{name: name, checkFn: checkFn}
}

// NewOptionalChecker создаёт необязательную проверку: ошибка даёт degraded.
func NewOptionalChecker(name string, checkFn func(ctx context.Context) error) *SimpleChecker {
	return &SimpleChecker{name: name, optional: true, checkFn: checkFn}
}

// Check выполняет проверку
func (c *SimpleChecker) Check(ctx context.Context) Check {
	start := time.Now()
	err := c.checkFn(ctx)
	check := Check{
		Name:     c.name,
		Status:   StatusHealthy,
		Duration: time.Since(start),
	}
	if err != nil {
		check.Status = StatusUnhealthy
		if c.optional {
			check.Status = StatusDegraded
		}
		check.Message = err.Error()
	}
	return check
}
