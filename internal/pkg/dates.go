package pkg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValidateDate valida una fecha en formato YYYY-MM-DD (o YYYY/MM/DD):
// mes entre 1 y 12 y día correcto según mes/año (considera bisiestos).
// Si limitToCurrentYear es true, el año no puede superar al actual.
func ValidateDate(fecha string, limitToCurrentYear bool) error {
	sep := "-"
	if strings.Contains(fecha, "/") {
		sep = "/"
	}

	parts := strings.Split(fecha, sep)
	if len(parts) != 3 {
		return errors.New("la fecha debe tener formato YYYY-MM-DD")
	}

	year, errY := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	day, errD := strconv.Atoi(parts[2])
	if errY != nil || errM != nil || errD != nil {
		return errors.New("la fecha debe tener formato YYYY-MM-DD")
	}

	if month < 1 || month > 12 {
		return errors.New("los meses deben estar entre 1 (Enero) y 12 (Diciembre)")
	}

	maxDays := daysInMonth(year, month)
	if day < 1 || day > maxDays {
		return fmt.Errorf("la fecha no es válida: el mes %d tiene un máximo de %d días", month, maxDays)
	}

	if limitToCurrentYear && year > time.Now().Year() {
		return errors.New("el año no puede ser mayor al actual")
	}

	return nil
}

// ValidateDateRange valida ambas fechas y que el inicio no supere al fin.
func ValidateDateRange(fechaInicio, fechaFin string) error {
	if err := ValidateDate(fechaInicio, false); err != nil {
		return err
	}
	if err := ValidateDate(fechaFin, true); err != nil {
		return err
	}

	start, err := ParseDate(fechaInicio)
	if err != nil {
		return err
	}
	end, err := ParseDate(fechaFin)
	if err != nil {
		return err
	}

	if start.After(end) {
		return errors.New("la fecha de inicio no puede ser mayor que la de fin")
	}

	return nil
}

// ParseDate convierte una fecha ya validada a time.Time (UTC, medianoche).
func ParseDate(fecha string) (time.Time, error) {
	normalized := strings.ReplaceAll(fecha, "/", "-")
	parsed, err := time.Parse("2006-1-2", normalized)
	if err != nil {
		return time.Time{}, errors.New("la fecha debe tener formato YYYY-MM-DD")
	}
	return parsed, nil
}

func daysInMonth(year, month int) int {
	// El día 0 del mes siguiente es el último día del mes.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
