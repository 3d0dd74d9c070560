package client

import "time"

const (
	DefaultInactiveMonths = 3
	MinInactiveMonths     = 1
	MaxInactiveMonths     = 12
)

// ValidThreshold informa se o período de inatividade está na faixa aceita.
func ValidThreshold(months int) bool {
	return months >= MinInactiveMonths && months <= MaxInactiveMonths
}

// BirthdaysToday: dia e mês do nascimento iguais aos de today. Sem ano.
func BirthdaysToday(clients []Client, today time.Time) []Client {
	return filter(clients, func(c Client) bool {
		if c.BirthDate == nil {
			return false
		}
		_, bm, bd := c.BirthDate.Date()
		_, tm, td := today.Date()
		return bm == tm && bd == td
	})
}

// BirthdaysThisMonth compara só o mês; contém BirthdaysToday.
func BirthdaysThisMonth(clients []Client, today time.Time) []Client {
	return filter(clients, func(c Client) bool {
		if c.BirthDate == nil {
			return false
		}
		return c.BirthDate.Month() == today.Month()
	})
}

// IsInactive: sem última compra conta como inativo. Com compra, inativo
// quando a data é estritamente anterior a now menos thresholdMonths meses,
// comparando datas de calendário.
func IsInactive(c Client, thresholdMonths int, now time.Time) bool {
	if c.LastPurchaseAt == nil {
		return true
	}
	if thresholdMonths < MinInactiveMonths {
		thresholdMonths = DefaultInactiveMonths
	}
	cutoff := civil(now).AddDate(0, -thresholdMonths, 0)
	return civil(*c.LastPurchaseAt).Before(cutoff)
}

func Inactive(clients []Client, thresholdMonths int, now time.Time) []Client {
	return filter(clients, func(c Client) bool {
		return IsInactive(c, thresholdMonths, now)
	})
}

// NewThisMonth: criados no mesmo mês/ano de now, no fuso de now.
func NewThisMonth(clients []Client, now time.Time) []Client {
	ny, nm, _ := now.Date()
	return filter(clients, func(c Client) bool {
		cy, cm, _ := c.CreatedAt.In(now.Location()).Date()
		return cy == ny && cm == nm
	})
}

func filter(clients []Client, keep func(Client) bool) []Client {
	out := make([]Client, 0, len(clients))
	for _, c := range clients {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
