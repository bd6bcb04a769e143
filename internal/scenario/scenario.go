// Package scenario - минимальный исполнитель UI-сценариев: порядок по зависимостям,
// пропуск зависимых сценариев после провала, сценарии с наборами данных и teardown-хуки.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateScenario = errors.New("сценарий объявлен дважды")
	ErrUnknownDependency = errors.New("неизвестная зависимость")
	ErrDependencyCycle   = errors.New("циклическая зависимость")
)

// Scenario - именованная проверка. DependsOn перечисляет сценарии того же набора,
// которые должны пройти до запуска этого.
type Scenario struct {
	Name        string
	Description string
	DependsOn   []string
	Run         func(t *T)

	cases []Case
}

// Case - одна строка данных параметризованного сценария.
type Case struct {
	Name string
	run  func(t *T)
}

// Cases возвращает строки сценария; обычный сценарий - одна строка без имени.
func (s Scenario) Cases() []Case {
	if len(s.cases) > 0 {
		return s.cases
	}
	return []Case{{run: s.Run}}
}

// Row - входные данные одной строки параметризованного сценария.
type Row[R any] struct {
	Name string
	Data R
}

// Parameterized строит сценарий, тело которого выполняется для каждой строки.
// Каждая строка - отдельный результат и отдельный вызов AfterEach.
func Parameterized[R any](name, description string, rows []Row[R], fn func(t *T, row R)) Scenario {
	s := Scenario{Name: name, Description: description}
	for i, row := range rows {
		caseName := row.Name
		if caseName == "" {
			caseName = fmt.Sprintf("#%d", i)
		}
		data := row.Data
		s.cases = append(s.cases, Case{Name: caseName, run: func(t *T) { fn(t, data) }})
	}
	return s
}

// After добавляет зависимости и возвращает сценарий для цепочек объявлений.
func (s Scenario) After(deps ...string) Scenario {
	s.DependsOn = append(append([]string(nil), s.DependsOn...), deps...)
	return s
}

// Suite - набор сценариев с общим teardown.
type Suite struct {
	Name        string
	Description string
	Scenarios   []Scenario
	AfterEach   func(ctx context.Context) error // после каждой строки каждого сценария, даже упавшего
	AfterAll    func(ctx context.Context) error // один раз после набора
}

// Order проверяет граф зависимостей и возвращает сценарии в топологическом порядке.
// Из готовых к запуску сценариев первым идет объявленный раньше.
func Order(scenarios []Scenario) ([]Scenario, error) {
	index := make(map[string]int, len(scenarios))
	for i, s := range scenarios {
		if _, ok := index[s.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateScenario, s.Name)
		}
		index[s.Name] = i
	}

	indegree := make([]int, len(scenarios))
	dependents := make([][]int, len(scenarios))
	for i, s := range scenarios {
		for _, dep := range s.DependsOn {
			j, ok := index[dep]
			if !ok {
				return nil, fmt.Errorf("%w: %q требует %q", ErrUnknownDependency, s.Name, dep)
			}
			indegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	ordered := make([]Scenario, 0, len(scenarios))
	done := make([]bool, len(scenarios))
	for len(ordered) < len(scenarios) {
		next := -1
		for i := range scenarios {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			var stuck []string
			for i, s := range scenarios {
				if !done[i] {
					stuck = append(stuck, s.Name)
				}
			}
			return nil, fmt.Errorf("%w: %s", ErrDependencyCycle, strings.Join(stuck, ", "))
		}
		done[next] = true
		ordered = append(ordered, scenarios[next])
		for _, d := range dependents[next] {
			indegree[d]--
		}
	}
	return ordered, nil
}
