package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/shop-dataset/catalog"
	"github.com/yeremiapane/shop-dataset/database"
	"github.com/yeremiapane/shop-dataset/dataset"
	"github.com/yeremiapane/shop-dataset/generator"
	"github.com/yeremiapane/shop-dataset/models"
	"github.com/yeremiapane/shop-dataset/services"
	"github.com/yeremiapane/shop-dataset/utils"
	"github.com/yeremiapane/shop-dataset/validator"
)

var (
	validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

	errBadName  = errors.New("dataset name must be 1-64 letters, digits, '-' or '_'")
	errNotFound = errors.New("dataset not found")
)

type DatasetController struct {
	Root     string
	Resolver *catalog.Resolver
	Defaults generator.Config
	// MaxRows caps customers, products and orders of one request.
	MaxRows int
	Cache   services.ReportCache
	// DB, when set, receives a copy of every generated dataset.
	DB *gorm.DB

	locks sync.Map
}

func NewDatasetController(root string, resolver *catalog.Resolver, defaults generator.Config, cache services.ReportCache) *DatasetController {
	return &DatasetController{
		Root:     root,
		Resolver: resolver,
		Defaults: defaults,
		MaxRows:  1_000_000,
		Cache:    cache,
	}
}

// lock serializes writers and readers of one dataset directory.
func (dc *DatasetController) lock(name string) func() {
	m, _ := dc.locks.LoadOrStore(name, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (dc *DatasetController) dir(c *gin.Context, name string) (string, bool) {
	if !validName.MatchString(name) {
		utils.RespondError(c, http.StatusBadRequest, errBadName)
		return "", false
	}
	return filepath.Join(dc.Root, name), true
}

// GetCatalog lists the product type to category mapping.
func (dc *DatasetController) GetCatalog(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Catalog", dc.Resolver.Entries())
}

type createDatasetRequest struct {
	Name      string  `json:"name" binding:"required"`
	Seed      *uint64 `json:"seed"`
	Customers *int    `json:"customers"`
	Products  *int    `json:"products"`
	Orders    *int    `json:"orders"`
	MinItems  *int    `json:"min_items"`
	MaxItems  *int    `json:"max_items"`
	// Now overrides the reference date, YYYY-MM-DD.
	Now string `json:"now"`
}

func (req createDatasetRequest) config(defaults generator.Config) (generator.Config, error) {
	cfg := defaults
	if req.Seed != nil {
		cfg.Seed = *req.Seed
	}
	for dst, src := range map[*int]*int{
		&cfg.Customers:        req.Customers,
		&cfg.Products:         req.Products,
		&cfg.Orders:           req.Orders,
		&cfg.MinItemsPerOrder: req.MinItems,
		&cfg.MaxItemsPerOrder: req.MaxItems,
	} {
		if src != nil {
			*dst = *src
		}
	}
	if req.Now != "" {
		t, err := time.Parse(models.DateLayout, req.Now)
		if err != nil {
			return cfg, fmt.Errorf("%w: now must be YYYY-MM-DD", generator.ErrInvalidConfig)
		}
		cfg.Now = models.DateOf(t)
	}
	return cfg, nil
}

// CreateDataset generates a dataset into <Root>/<name>, replacing any
// previous dataset of that name.
func (dc *DatasetController) CreateDataset(c *gin.Context) {
	var body createDatasetRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	dir, ok := dc.dir(c, body.Name)
	if !ok {
		return
	}

	cfg, err := body.config(dc.Defaults)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if cfg.Customers > dc.MaxRows || cfg.Products > dc.MaxRows || cfg.Orders > dc.MaxRows {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("at most %d rows per table", dc.MaxRows))
		return
	}

	gen, err := generator.New(cfg, dc.Resolver, generator.WithLoggers(
		utils.Info().WithField("dataset", body.Name),
		utils.Error().WithField("dataset", body.Name),
	))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	unlock := dc.lock(body.Name)
	defer unlock()

	res, err := gen.Run()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if _, err := dataset.WriteDir(dir, &res.Dataset); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	md := res.Metadata(time.Now())
	if _, err := dataset.WriteMetadata(dir, md); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := dc.Cache.Delete(c.Request.Context(), services.DatasetPrefix(body.Name)); err != nil {
		utils.Error().WithError(err).WithField("dataset", body.Name).Error("evict cached reports")
	}
	if dc.DB != nil {
		if err := database.Export(c.Request.Context(), dc.DB, &res.Dataset); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusCreated, "Dataset generated", md)
}

// GetDataset returns the metadata record of a dataset.
func (dc *DatasetController) GetDataset(c *gin.Context) {
	dir, ok := dc.dir(c, c.Param("name"))
	if !ok {
		return
	}
	unlock := dc.lock(c.Param("name"))
	defer unlock()

	md, err := dataset.ReadMetadata(dir)
	if errors.Is(err, os.ErrNotExist) {
		utils.RespondError(c, http.StatusNotFound, errNotFound)
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dataset metadata", md)
}

// ValidateDataset runs the validator over a dataset directory. It answers
// 200 when every check passes and 422 otherwise.
func (dc *DatasetController) ValidateDataset(c *gin.Context) {
	name := c.Param("name")
	dir, ok := dc.dir(c, name)
	if !ok {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		utils.RespondError(c, http.StatusNotFound, errNotFound)
		return
	}

	unlock := dc.lock(name)
	defer unlock()

	ctx := c.Request.Context()
	key := ""
	if md, err := dataset.ReadMetadata(dir); err == nil && md.RunID != "" {
		key = services.ReportKey(name, md.RunID)
	}

	var report *validator.Report
	if key != "" {
		cached, hit, err := dc.Cache.Get(ctx, key)
		if err != nil {
			utils.Error().WithError(err).WithField("dataset", name).Error("read cached report")
		}
		if hit {
			report = cached
		}
	}
	if report == nil {
		report = validator.New(dc.Resolver).Validate(dataset.LoadDir(dir))
		if key != "" {
			if err := dc.Cache.Set(ctx, key, report); err != nil {
				utils.Error().WithError(err).WithField("dataset", name).Error("cache report")
			}
		}
	}

	if report.Passed() {
		utils.RespondJSON(c, http.StatusOK, "Validation passed", report)
		return
	}
	utils.RespondJSON(c, http.StatusUnprocessableEntity, "Validation failed", report)
}
