package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"code-jam-service/internal/model"
)

// Колонки ростера.
const (
	ColumnTeamName   = "Team Name"
	ColumnMemberID   = "Team Member Discord ID"
	ColumnTeamLeader = "Team Leader"
)

// MaxRosterSize ограничивает размер скачиваемого ростера.
const MaxRosterSize = 5 << 20

// MemberResolver разрешает идентификатор участника в участника сервера.
type MemberResolver interface {
	Member(ctx context.Context, userID string) (model.Member, error)
}

// SkippedRow описывает строку ростера, отброшенную при разборе.
type SkippedRow struct {
	Line     int
	TeamName string
	MemberID string
	Reason   string
}

// RosterParser превращает табличный ростер в распределение участников по командам.
type RosterParser struct {
	resolver MemberResolver
	log      *slog.Logger
}

// NewRosterParser создаёт парсер ростера.
func NewRosterParser(resolver MemberResolver, log *slog.Logger) *RosterParser {
	return &RosterParser{resolver: resolver, log: log}
}

// Parse читает ростер и группирует участников по командам в порядке появления строк.
// Строки с неразрешимым участником отбрасываются и возвращаются в skipped; импорт при этом не прерывается.
func (p *RosterParser) Parse(ctx context.Context, r io.Reader) (*model.TeamAssignment, []SkippedRow, error) {
	rows, err := ReadRoster(r)
	if err != nil {
		return nil, nil, err
	}

	teams := model.NewTeamAssignment()
	skipped := make([]SkippedRow, 0)

	for i, row := range rows {
		// строка 1 — заголовок
		line := i + 2

		member, reason := p.resolve(ctx, row.MemberID)
		if reason != "" {
			skipped = append(skipped, SkippedRow{
				Line:     line,
				TeamName: row.TeamName,
				MemberID: row.MemberID,
				Reason:   reason,
			})
			p.log.Debug("skipping roster row",
				slog.Int("line", line),
				slog.String("member_id", row.MemberID),
				slog.String("reason", reason),
			)
			// команда без участников всё равно должна попасть в распределение
			if row.TeamName != "" {
				teams.Ensure(row.TeamName)
			}
			continue
		}

		teams.Add(row.TeamName, model.MemberAssignment{
			Member:   member,
			IsLeader: row.IsLeader,
		})
	}

	return teams, skipped, nil
}

func (p *RosterParser) resolve(ctx context.Context, rawID string) (model.Member, string) {
	if _, err := strconv.ParseUint(rawID, 10, 64); err != nil {
		return model.Member{}, "member id is not an integer"
	}
	member, err := p.resolver.Member(ctx, rawID)
	if err != nil {
		return model.Member{}, fmt.Sprintf("member could not be resolved: %v", err)
	}
	return member, ""
}

// ReadRoster разбирает CSV с заголовком и возвращает строки ростера без разрешения участников.
// Отсутствие обязательных колонок является ошибкой ввода.
func ReadRoster(r io.Reader) ([]model.RosterRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrInput("The roster is empty.")
		}
		return nil, &AppError{Code: CodeInput, Message: "The roster could not be read as CSV.", Err: err}
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		columns[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{ColumnTeamName, ColumnMemberID, ColumnTeamLeader} {
		if _, ok := columns[required]; !ok {
			return nil, ErrInput(fmt.Sprintf("The roster is missing the %q column.", required))
		}
	}

	rows := make([]model.RosterRow, 0)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &AppError{Code: CodeInput, Message: "The roster could not be read as CSV.", Err: err}
		}

		rows = append(rows, model.RosterRow{
			TeamName: field(record, columns[ColumnTeamName]),
			MemberID: strings.TrimSpace(field(record, columns[ColumnMemberID])),
			IsLeader: strings.EqualFold(strings.TrimSpace(field(record, columns[ColumnTeamLeader])), "Y"),
		})
	}
	return rows, nil
}

func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}

// RosterFetcher загружает ростер по ссылке или из вложения.
type RosterFetcher struct {
	client *http.Client
}

// NewRosterFetcher создаёт загрузчик ростера поверх HTTP-клиента.
func NewRosterFetcher(client *http.Client) *RosterFetcher {
	return &RosterFetcher{client: client}
}

// Fetch скачивает ростер. Любой статус, кроме 200, является ошибкой ввода.
func (f *RosterFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &AppError{Code: CodeInput, Message: "The roster link is not a valid URL.", Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &AppError{Code: CodeInput, Message: "Could not download the roster.", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrInput(fmt.Sprintf("Got a bad response from the URL: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxRosterSize+1))
	if err != nil {
		return nil, &AppError{Code: CodeInput, Message: "Could not download the roster.", Err: err}
	}
	if len(body) > MaxRosterSize {
		return nil, ErrInput(fmt.Sprintf("The roster is larger than %d MiB.", MaxRosterSize>>20))
	}
	return body, nil
}
