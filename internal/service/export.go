package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Totarae/brevly/internal/model"
)

const (
	csvHeader     = "ID,Original URL,Short URL,Access Count,Created At"
	csvTimeLayout = "2006-01-02 15:04:05.000"
)

var errPageSize = errors.New("pageSize must be at least 1")

var filenameReplacer = strings.NewReplacer(":", "", ".", "")

// BuildCSV выгружает ссылки построчно. Поля не экранируются: запятая внутри
// URL сломает разбор строки.
func BuildCSV(links []*model.ShortenedLink) string {
	rows := make([]string, 0, len(links)+1)
	rows = append(rows, csvHeader)

	for _, link := range links {
		rows = append(rows, strings.Join([]string{
			link.ID.String(),
			link.OriginalURL,
			link.ShortURL,
			strconv.Itoa(link.AccessCount),
			link.CreatedAt.UTC().Format(csvTimeLayout),
		}, ","))
	}

	return strings.Join(rows, "\n")
}

// ExportFilename имя файла выгрузки: uuid, метка времени без ":" и "." и суффикс.
func ExportFilename(id uuid.UUID, now time.Time) string {
	timestamp := filenameReplacer.Replace(now.UTC().Format("2006-01-02T15:04:05.000Z07:00"))
	return id.String() + timestamp + "linkscsv.csv"
}
