// Package analytics - чистые вычисления для дашборда и отчётов.
// Функции не ходят в сеть и не меняют входные данные.
package analytics

import (
	"fmt"

	"gearguard/internal/entities"
)

type HealthBucket string

const (
	BucketCritical HealthBucket = "critical"
	BucketWarning  HealthBucket = "warning"
	BucketHealthy  HealthBucket = "healthy"
)

type BarColor string

const (
	BarGreen  BarColor = "green"
	BarYellow BarColor = "yellow"
	BarRed    BarColor = "red"
)

// HealthPolicy - единственная таблица порогов здоровья.
// Создаётся один раз при старте и передаётся во все сервисы.
type HealthPolicy struct {
	criticalBelow int
	healthyFrom   int
	barGreenFrom  int
	barYellowFrom int
}

func NewHealthPolicy(criticalBelow, healthyFrom, barGreenFrom, barYellowFrom int) (*HealthPolicy, error) {
	if criticalBelow < 0 || healthyFrom > 100 || criticalBelow > healthyFrom {
		return nil, fmt.Errorf("некорректные пороги здоровья: critical<%d, healthy>=%d", criticalBelow, healthyFrom)
	}
	if barYellowFrom > barGreenFrom {
		return nil, fmt.Errorf("некорректные пороги цвета: yellow>=%d, green>=%d", barYellowFrom, barGreenFrom)
	}
	return &HealthPolicy{
		criticalBelow: criticalBelow,
		healthyFrom:   healthyFrom,
		barGreenFrom:  barGreenFrom,
		barYellowFrom: barYellowFrom,
	}, nil
}

// DefaultHealthPolicy: critical <30, warning 30-69, healthy >=70; полоса green >=80, yellow >=50.
func DefaultHealthPolicy() *HealthPolicy {
	p, _ := NewHealthPolicy(30, 70, 80, 50)
	return p
}

func (p *HealthPolicy) Bucket(health int) HealthBucket {
	switch {
	case health < p.criticalBelow:
		return BucketCritical
	case health < p.healthyFrom:
		return BucketWarning
	default:
		return BucketHealthy
	}
}

func (p *HealthPolicy) BarColor(health int) BarColor {
	switch {
	case health >= p.barGreenFrom:
		return BarGreen
	case health >= p.barYellowFrom:
		return BarYellow
	default:
		return BarRed
	}
}

func (p *HealthPolicy) IsCritical(health int) bool { return p.Bucket(health) == BucketCritical }

func (p *HealthPolicy) IsHealthy(health int) bool { return p.Bucket(health) == BucketHealthy }

// StatusLabel - подпись в таблице "требует внимания".
func (p *HealthPolicy) StatusLabel(health int) string {
	switch p.Bucket(health) {
	case BucketCritical:
		return "Critical"
	case BucketWarning:
		return "Warning"
	}
	return "Good"
}

func (p *HealthPolicy) CriticalBelow() int { return p.criticalBelow }

func (p *HealthPolicy) HealthyFrom() int { return p.healthyFrom }

// Buckets возвращает корзину для каждой единицы оборудования в исходном порядке.
func (p *HealthPolicy) Buckets(equipment []entities.Equipment) []HealthBucket {
	out := make([]HealthBucket, len(equipment))
	for i, e := range equipment {
		out[i] = p.Bucket(e.HealthPercentage)
	}
	return out
}

// FilterEquipment применяет фильтр списка оборудования: all, critical, healthy.
func (p *HealthPolicy) FilterEquipment(equipment []entities.Equipment, filter string) []entities.Equipment {
	out := make([]entities.Equipment, 0, len(equipment))
	for _, e := range equipment {
		switch filter {
		case "critical":
			if !p.IsCritical(e.HealthPercentage) {
				continue
			}
		case "healthy":
			if !p.IsHealthy(e.HealthPercentage) {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}
