package httpapi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/dashboard"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/dataset"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/domain"
)

var validate = validator.New()

// registerAPI wires the aggregate endpoints into the Fiber app.
func registerAPI(app *fiber.App, loader *dataset.Loader) {
	v1 := app.Group("/api/v1")

	withView := func(handler func(c *fiber.Ctx, view []domain.Quake, params dashboard.Params) error) fiber.Handler {
		return func(c *fiber.Ctx) error {
			params, err := parseQuakeQuery(c)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}

			quakes, err := loader.Load()
			if err != nil {
				if errors.Is(err, dataset.ErrCleanedFileMissing) {
					return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
				}
				return fiber.NewError(fiber.StatusInternalServerError, "failed to load cleaned dataset")
			}

			return handler(c, dashboard.Filter(quakes, params), params)
		}
	}

	v1.Get("/summary", withView(func(c *fiber.Ctx, view []domain.Quake, params dashboard.Params) error {
		return c.JSON(dashboard.Summarize(view, params.Metric))
	}))

	v1.Get("/trend", withView(func(c *fiber.Ctx, view []domain.Quake, params dashboard.Params) error {
		return c.JSON(fiber.Map{
			"metric": metricOrDefault(params.Metric),
			"trend":  dashboard.TrendByYear(view, params.Metric),
		})
	}))

	v1.Get("/mix", withView(func(c *fiber.Ctx, view []domain.Quake, _ dashboard.Params) error {
		return c.JSON(fiber.Map{
			"mix":      dashboard.CasualtyMix(view),
			"severity": dashboard.SeverityBreakdown(view),
		})
	}))

	v1.Get("/map", withView(func(c *fiber.Ctx, view []domain.Quake, params dashboard.Params) error {
		return c.JSON(fiber.Map{
			"metric": metricOrDefault(params.Metric),
			"points": dashboard.MapPoints(view, params.Metric),
		})
	}))

	v1.Get("/quakes", withView(func(c *fiber.Ctx, view []domain.Quake, _ dashboard.Params) error {
		return c.JSON(fiber.Map{
			"total": len(view),
			"rows":  dashboard.Table(view),
		})
	}))

	v1.Get("/export", withView(func(c *fiber.Ctx, view []domain.Quake, _ dashboard.Params) error {
		data, err := dashboard.ExportCSV(view)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render export")
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="earthquakes_filtered.csv"`)
		return c.Send(data)
	}))
}

func metricOrDefault(metric string) string {
	if metric == "" {
		return dashboard.MetricTotalCasualties
	}
	return metric
}

// quakeQuery holds the filter query parameters shared by all aggregate
// endpoints. Absent parameters mean "no filter".
type quakeQuery struct {
	Magnitude      *float64 `validate:"omitempty,gte=0,lte=12"`
	YearFrom       int      `validate:"gte=0"`
	YearTo         int      `validate:"gte=0"`
	Severities     []string `validate:"dive,oneof=minor moderate severe"`
	CasualtiesOnly bool
	Category       string `validate:"omitempty,oneof=all quake_only quake_tsunami"`
	Metric         string `validate:"omitempty,oneof=total_casualties deaths injuries"`
}

func parseQuakeQuery(c *fiber.Ctx) (dashboard.Params, error) {
	var q quakeQuery

	if s := c.Query("magnitude"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return dashboard.Params{}, fmt.Errorf("invalid magnitude %q", s)
		}
		q.Magnitude = &v
	}

	var err error
	if q.YearFrom, err = queryInt(c, "year_from"); err != nil {
		return dashboard.Params{}, err
	}
	if q.YearTo, err = queryInt(c, "year_to"); err != nil {
		return dashboard.Params{}, err
	}
	if q.YearFrom != 0 && q.YearTo != 0 && q.YearTo < q.YearFrom {
		return dashboard.Params{}, errors.New("year_to must not be before year_from")
	}

	if s := c.Query("severity"); s != "" {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				q.Severities = append(q.Severities, part)
			}
		}
	}

	if s := c.Query("casualties_only"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return dashboard.Params{}, fmt.Errorf("invalid casualties_only %q", s)
		}
		q.CasualtiesOnly = v
	}

	q.Category = c.Query("category")
	q.Metric = c.Query("metric")

	if err := validate.Struct(q); err != nil {
		return dashboard.Params{}, err
	}

	return dashboard.Params{
		Magnitude:      q.Magnitude,
		YearFrom:       q.YearFrom,
		YearTo:         q.YearTo,
		Severities:     q.Severities,
		CasualtiesOnly: q.CasualtiesOnly,
		Category:       q.Category,
		Metric:         q.Metric,
	}, nil
}

func queryInt(c *fiber.Ctx, key string) (int, error) {
	s := c.Query(key)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return v, nil
}
