package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/access"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/dto"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/repository"
)

// PolicyUseCase políticas del marketplace. Quien no sea admin solo ve las publicadas.
type PolicyUseCase struct {
	repo repository.PolicyRepository
	now  Clock
}

func NewPolicyUseCase(repo repository.PolicyRepository) *PolicyUseCase {
	return &PolicyUseCase{repo: repo, now: utcNow}
}

func (uc *PolicyUseCase) List(ctx context.Context, actor access.Access) ([]dto.PolicyResponse, error) {
	list, err := uc.repo.List(ctx, !actor.IsAdmin())
	if err != nil {
		return nil, err
	}
	out := make([]dto.PolicyResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPolicyResponse(p))
	}
	return out, nil
}

func (uc *PolicyUseCase) Get(ctx context.Context, actor access.Access, id string) (*dto.PolicyResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || (!p.Published && !actor.IsAdmin()) {
		return nil, domain.ErrNotFound
	}
	resp := toPolicyResponse(p)
	return &resp, nil
}

// Upsert crea (id vacío) o actualiza una política. La versión sube solo si cambia el contenido.
func (uc *PolicyUseCase) Upsert(ctx context.Context, id string, in dto.UpsertPolicyRequest) (*dto.PolicyResponse, error) {
	if !entity.IsValidPolicyKind(in.Kind) {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	if id == "" {
		p := &entity.Policy{
			ID:        uuid.New().String(),
			Kind:      in.Kind,
			Title:     strings.TrimSpace(in.Title),
			Body:      in.Body,
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.repo.Create(ctx, p); err != nil {
			return nil, err
		}
		resp := toPolicyResponse(p)
		return &resp, nil
	}

	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	title := strings.TrimSpace(in.Title)
	if p.Kind != in.Kind || p.Title != title || p.Body != in.Body {
		p.Kind, p.Title, p.Body = in.Kind, title, in.Body
		p.Version++
		p.UpdatedAt = now
		if err := uc.repo.Update(ctx, p); err != nil {
			return nil, err
		}
	}
	resp := toPolicyResponse(p)
	return &resp, nil
}

// Publish publica o retira una política.
func (uc *PolicyUseCase) Publish(ctx context.Context, id string, published bool) (*dto.PolicyResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.Published != published {
		p.Published = published
		p.UpdatedAt = uc.now()
		if err := uc.repo.Update(ctx, p); err != nil {
			return nil, err
		}
	}
	resp := toPolicyResponse(p)
	return &resp, nil
}

func (uc *PolicyUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toPolicyResponse(p *entity.Policy) dto.PolicyResponse {
	return dto.PolicyResponse{
		ID:        p.ID,
		Kind:      p.Kind,
		Title:     p.Title,
		Body:      p.Body,
		Version:   p.Version,
		Published: p.Published,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// CategoryUseCase categorías del catálogo.
type CategoryUseCase struct {
	repo repository.CategoryRepository
	now  Clock
}

func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, now: utcNow}
}

func (uc *CategoryUseCase) List(ctx context.Context, activeOnly bool) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// Create el slug se deriva del nombre; un slug repetido devuelve domain.ErrDuplicate.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	slug := Slugify(in.Name)
	if slug == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkParent(ctx, "", in.ParentID); err != nil {
		return nil, err
	}
	now := uc.now()
	c := &entity.Category{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Slug:      slug,
		ParentID:  in.ParentID,
		Active:    in.Active == nil || *in.Active,
		SortOrder: in.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c)
	return &resp, nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	slug := Slugify(in.Name)
	if slug == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkParent(ctx, id, in.ParentID); err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Slug = slug
	c.ParentID = in.ParentID
	if in.Active != nil {
		c.Active = *in.Active
	}
	c.SortOrder = in.SortOrder
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c)
	return &resp, nil
}

func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *CategoryUseCase) checkParent(ctx context.Context, id, parentID string) error {
	if parentID == "" {
		return nil
	}
	if parentID == id {
		return domain.ErrInvalidInput
	}
	parent, err := uc.repo.GetByID(ctx, parentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return domain.ErrInvalidInput
	}
	return nil
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		ParentID:  c.ParentID,
		Active:    c.Active,
		SortOrder: c.SortOrder,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// WarrantyUseCase reglas de garantía por categoría.
type WarrantyUseCase struct {
	rules      repository.WarrantyRuleRepository
	categories repository.CategoryRepository
	now        Clock
}

func NewWarrantyUseCase(rules repository.WarrantyRuleRepository, categories repository.CategoryRepository) *WarrantyUseCase {
	return &WarrantyUseCase{rules: rules, categories: categories, now: utcNow}
}

func (uc *WarrantyUseCase) List(ctx context.Context, categoryID string) ([]dto.WarrantyRuleResponse, error) {
	list, err := uc.rules.List(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarrantyRuleResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toWarrantyResponse(r))
	}
	return out, nil
}

func (uc *WarrantyUseCase) Create(ctx context.Context, in dto.WarrantyRuleRequest) (*dto.WarrantyRuleResponse, error) {
	if err := uc.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	if in.DurationDays <= 0 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	r := &entity.WarrantyRule{
		ID:           uuid.New().String(),
		CategoryID:   in.CategoryID,
		DurationDays: in.DurationDays,
		Coverage:     strings.TrimSpace(in.Coverage),
		Active:       in.Active == nil || *in.Active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.rules.Create(ctx, r); err != nil {
		return nil, err
	}
	resp := toWarrantyResponse(r)
	return &resp, nil
}

func (uc *WarrantyUseCase) Update(ctx context.Context, id string, in dto.WarrantyRuleRequest) (*dto.WarrantyRuleResponse, error) {
	r, err := uc.rules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	if in.DurationDays <= 0 {
		return nil, domain.ErrInvalidInput
	}
	r.CategoryID = in.CategoryID
	r.DurationDays = in.DurationDays
	r.Coverage = strings.TrimSpace(in.Coverage)
	if in.Active != nil {
		r.Active = *in.Active
	}
	r.UpdatedAt = uc.now()
	if err := uc.rules.Update(ctx, r); err != nil {
		return nil, err
	}
	resp := toWarrantyResponse(r)
	return &resp, nil
}

func (uc *WarrantyUseCase) Delete(ctx context.Context, id string) error {
	return uc.rules.Delete(ctx, id)
}

func (uc *WarrantyUseCase) checkCategory(ctx context.Context, categoryID string) error {
	c, err := uc.categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrInvalidInput
	}
	return nil
}

func toWarrantyResponse(r *entity.WarrantyRule) dto.WarrantyRuleResponse {
	return dto.WarrantyRuleResponse{
		ID:           r.ID,
		CategoryID:   r.CategoryID,
		DurationDays: r.DurationDays,
		Coverage:     r.Coverage,
		Active:       r.Active,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
