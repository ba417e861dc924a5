package location

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/location"
	"github.com/storefront/backend/internal/domain/shared"
	sheetimport "github.com/storefront/backend/internal/infrastructure/import"
	"go.uber.org/zap"
)

// ImportKind names the location level an import targets
type ImportKind string

const (
	ImportCountries ImportKind = "countries"
	ImportStates    ImportKind = "states"
	ImportCities    ImportKind = "cities"
	ImportPincodes  ImportKind = "pincodes"
)

// ImportResult summarizes an import. Created+Updated always equals ValidRows
// and FailedRows always equals len(Errors).
type ImportResult struct {
	TotalRows  int      `json:"totalRows"`
	ValidRows  int      `json:"validRows"`
	Created    int      `json:"created"`
	Updated    int      `json:"updated"`
	FailedRows int      `json:"failedRows"`
	Errors     []string `json:"-"`
}

// ImportRecorder records import outcomes as metrics
type ImportRecorder interface {
	RecordImport(ctx context.Context, kind string, created, updated, failed int)
}

// NoopImportRecorder discards import metrics
type NoopImportRecorder struct{}

func (NoopImportRecorder) RecordImport(context.Context, string, int, int, int) {}

// rowFailure marks an error that rejects one row without aborting the import
type rowFailure struct {
	err error
}

func (f *rowFailure) Error() string {
	var de *shared.DomainError
	if errors.As(f.err, &de) {
		return de.Message
	}
	return f.err.Error()
}

func reject(err error) error {
	return &rowFailure{err: err}
}

func rejectf(format string, args ...any) error {
	return &rowFailure{err: fmt.Errorf(format, args...)}
}

type importRow struct {
	number   int
	parentID uuid.UUID
	values   map[string]string
}

type importSpec struct {
	columns    []sheetimport.Column
	parentKey  string
	parentName string
	parents    func(ctx context.Context, repos TransactionalRepositories, ids []uuid.UUID) (map[uuid.UUID]bool, error)
	upsert     func(ctx context.Context, repos TransactionalRepositories, row importRow) (created bool, err error)
}

var statusColumn = sheetimport.Column{Key: "status", Aliases: []string{"state_status", "is_active"}}

// importStatus maps the boolean spellings an is_active column carries onto
// active and inactive. Other values pass through for ParseStatus to check.
func importStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "y":
		return string(shared.StatusActive)
	case "false", "0", "no", "n":
		return string(shared.StatusInactive)
	default:
		return raw
	}
}

var importSpecs = map[ImportKind]importSpec{
	ImportCountries: {
		columns: []sheetimport.Column{
			{Key: "name", Aliases: []string{"country_name", "countryname", "country name", "country"}, Required: true},
			{Key: "iso_code", Aliases: []string{"isocode", "iso code", "iso"}},
			{Key: "phone_code", Aliases: []string{"phonecode", "phone code", "dial_code", "dial code"}},
			statusColumn,
		},
		upsert: upsertCountry,
	},
	ImportStates: {
		columns: []sheetimport.Column{
			{Key: "country_id", Aliases: []string{"countryid", "country id"}, Required: true},
			{Key: "name", Aliases: []string{"state_name", "statename", "state name", "state"}, Required: true},
			{Key: "state_code", Aliases: []string{"statecode", "state code", "code"}},
			statusColumn,
		},
		parentKey:  "country_id",
		parentName: "Country",
		parents: func(ctx context.Context, repos TransactionalRepositories, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
			return repos.CountryRepo().ExistingIDs(ctx, ids)
		},
		upsert: upsertState,
	},
	ImportCities: {
		columns: []sheetimport.Column{
			{Key: "state_id", Aliases: []string{"stateid", "state id"}, Required: true},
			{Key: "name", Aliases: []string{"city_name", "cityname", "city name", "city"}, Required: true},
			statusColumn,
		},
		parentKey:  "state_id",
		parentName: "State",
		parents: func(ctx context.Context, repos TransactionalRepositories, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
			return repos.StateRepo().ExistingIDs(ctx, ids)
		},
		upsert: upsertCity,
	},
	ImportPincodes: {
		columns: []sheetimport.Column{
			{Key: "city_id", Aliases: []string{"cityid", "city id"}, Required: true},
			{Key: "pincode", Aliases: []string{"pin_code", "pin code", "postal_code", "postal code", "zip"}, Required: true},
			{Key: "area_name", Aliases: []string{"areaname", "area name", "area"}},
			statusColumn,
		},
		parentKey:  "city_id",
		parentName: "City",
		parents: func(ctx context.Context, repos TransactionalRepositories, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
			return repos.CityRepo().ExistingIDs(ctx, ids)
		},
		upsert: upsertPincode,
	},
}

// ParseImportKind validates an import kind
func ParseImportKind(raw string) (ImportKind, error) {
	kind := ImportKind(raw)
	if _, ok := importSpecs[kind]; !ok {
		return "", shared.NewValidationError("unsupported import type %q", raw)
	}
	return kind, nil
}

// ImportService bulk-upserts location rows from a spreadsheet
type ImportService struct {
	scope    TransactionScope
	cache    ResolutionCache
	recorder ImportRecorder
	logger   *zap.Logger
}

// NewImportService creates a new ImportService
func NewImportService(scope TransactionScope, cache ResolutionCache, recorder ImportRecorder, logger *zap.Logger) *ImportService {
	if recorder == nil {
		recorder = NoopImportRecorder{}
	}
	return &ImportService{scope: scope, cache: cache, recorder: recorder, logger: logger}
}

// Import validates every row, checks parent ids in bulk and upserts the valid
// rows by natural key inside one transaction. Invalid rows are reported and
// skipped. Any infrastructure error rolls back the whole import.
func (s *ImportService) Import(ctx context.Context, kind ImportKind, sheet *sheetimport.Sheet) (*ImportResult, error) {
	spec, ok := importSpecs[kind]
	if !ok {
		return nil, shared.NewValidationError("unsupported import type %q", kind)
	}

	cols, err := sheet.MatchColumns(spec.columns)
	if err != nil {
		var missing *sheetimport.MissingColumnsError
		if errors.As(err, &missing) {
			return nil, shared.NewValidationError("%s", missing.Error())
		}
		return nil, err
	}

	result := &ImportResult{}
	errs := sheetimport.NewErrorCollection()
	rows := make([]importRow, 0, len(sheet.Rows))

	for _, r := range sheet.Rows {
		if r.IsEmpty() {
			continue
		}
		result.TotalRows++

		row := importRow{number: r.Number, values: make(map[string]string, len(spec.columns))}
		for _, c := range spec.columns {
			row.values[c.Key] = cols.Value(r, c.Key)
		}
		row.values["status"] = importStatus(row.values["status"])
		if spec.parentKey != "" {
			raw := row.values[spec.parentKey]
			if raw == "" {
				errs.Add(r.Number, "%s is required", spec.parentKey)
				continue
			}
			id, err := uuid.Parse(raw)
			if err != nil {
				errs.Add(r.Number, "%s '%s' is not a valid id", spec.parentKey, raw)
				continue
			}
			row.parentID = id
		}
		rows = append(rows, row)
	}

	created, updated := 0, 0
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var existing map[uuid.UUID]bool
		if spec.parents != nil && len(rows) > 0 {
			var err error
			existing, err = spec.parents(ctx, repos, parentIDs(rows))
			if err != nil {
				return err
			}
		}

		for _, row := range rows {
			if err := ctx.Err(); err != nil {
				return err
			}
			if spec.parents != nil && !existing[row.parentID] {
				errs.Add(row.number, "%s not found for %s %s", spec.parentName, spec.parentKey, row.parentID)
				continue
			}

			isNew, err := spec.upsert(ctx, repos, row)
			if err != nil {
				var rf *rowFailure
				if errors.As(err, &rf) {
					errs.Add(row.number, "%s", rf.Error())
					continue
				}
				return err
			}
			if isNew {
				created++
			} else {
				updated++
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Location import rolled back",
			zap.String("kind", string(kind)),
			zap.Int("total_rows", result.TotalRows),
			zap.Error(err))
		return nil, fmt.Errorf("import %s: %w", kind, err)
	}

	result.Created = created
	result.Updated = updated
	result.ValidRows = created + updated
	result.FailedRows = errs.Count()
	result.Errors = errs.Messages()

	if result.ValidRows > 0 {
		invalidateCache(ctx, s.cache, s.logger)
	}
	s.recorder.RecordImport(ctx, string(kind), result.Created, result.Updated, result.FailedRows)
	s.logger.Info("Location import completed",
		zap.String("kind", string(kind)),
		zap.Int("total_rows", result.TotalRows),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("failed_rows", result.FailedRows))

	return result, nil
}

func parentIDs(rows []importRow) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(rows))
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.parentID]; ok {
			continue
		}
		seen[r.parentID] = struct{}{}
		ids = append(ids, r.parentID)
	}
	return ids
}

func upsertCountry(ctx context.Context, repos TransactionalRepositories, row importRow) (bool, error) {
	name := row.values["name"]
	if name == "" {
		return false, rejectf("name is required")
	}

	country, err := repos.CountryRepo().FindByName(ctx, name)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		country, err = location.NewCountry(name, row.values["iso_code"], row.values["phone_code"])
		if err != nil {
			return false, reject(err)
		}
		if err := applyStatus(row.values["status"], country.SetStatus); err != nil {
			return false, reject(err)
		}
		return true, repos.CountryRepo().Save(ctx, country)
	case err != nil:
		return false, err
	}

	if v := row.values["iso_code"]; v != "" {
		if err := country.SetISOCode(v); err != nil {
			return false, reject(err)
		}
	}
	if v := row.values["phone_code"]; v != "" {
		if err := country.SetPhoneCode(v); err != nil {
			return false, reject(err)
		}
	}
	if err := applyStatus(row.values["status"], country.SetStatus); err != nil {
		return false, reject(err)
	}
	return false, repos.CountryRepo().Save(ctx, country)
}

func upsertState(ctx context.Context, repos TransactionalRepositories, row importRow) (bool, error) {
	name := row.values["name"]
	if name == "" {
		return false, rejectf("name is required")
	}

	state, err := repos.StateRepo().FindByCountryAndName(ctx, row.parentID, name)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		state, err = location.NewState(row.parentID, name, row.values["state_code"])
		if err != nil {
			return false, reject(err)
		}
		if err := applyStatus(row.values["status"], state.SetStatus); err != nil {
			return false, reject(err)
		}
		return true, repos.StateRepo().Save(ctx, state)
	case err != nil:
		return false, err
	}

	if v := row.values["state_code"]; v != "" {
		if err := state.SetStateCode(v); err != nil {
			return false, reject(err)
		}
	}
	if err := applyStatus(row.values["status"], state.SetStatus); err != nil {
		return false, reject(err)
	}
	return false, repos.StateRepo().Save(ctx, state)
}

func upsertCity(ctx context.Context, repos TransactionalRepositories, row importRow) (bool, error) {
	name := row.values["name"]
	if name == "" {
		return false, rejectf("name is required")
	}

	city, err := repos.CityRepo().FindByStateAndName(ctx, row.parentID, name)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		city, err = location.NewCity(row.parentID, name)
		if err != nil {
			return false, reject(err)
		}
		if err := applyStatus(row.values["status"], city.SetStatus); err != nil {
			return false, reject(err)
		}
		return true, repos.CityRepo().Save(ctx, city)
	case err != nil:
		return false, err
	}

	if err := applyStatus(row.values["status"], city.SetStatus); err != nil {
		return false, reject(err)
	}
	return false, repos.CityRepo().Save(ctx, city)
}

func upsertPincode(ctx context.Context, repos TransactionalRepositories, row importRow) (bool, error) {
	code, err := location.NormalizePincode(row.values["pincode"])
	if err != nil {
		return false, reject(err)
	}

	pincode, err := repos.PincodeRepo().FindByCityAndCode(ctx, row.parentID, code)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		pincode, err = location.NewPincode(row.parentID, code, row.values["area_name"])
		if err != nil {
			return false, reject(err)
		}
		if err := applyStatus(row.values["status"], pincode.SetStatus); err != nil {
			return false, reject(err)
		}
		return true, repos.PincodeRepo().Save(ctx, pincode)
	case err != nil:
		return false, err
	}

	if v := row.values["area_name"]; v != "" {
		if err := pincode.SetAreaName(v); err != nil {
			return false, reject(err)
		}
	}
	if err := applyStatus(row.values["status"], pincode.SetStatus); err != nil {
		return false, reject(err)
	}
	return false, repos.PincodeRepo().Save(ctx, pincode)
}
