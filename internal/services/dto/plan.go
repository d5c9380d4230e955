package dto

import "time"

// PlanQuery carries the catalog filters plus the viewer's auth state.
type PlanQuery struct {
	Cep        string
	Category   string
	CitySlug   string
	UserID     string
	IsLoggedIn bool
}

// ProviderRef is the slim provider projection embedded in plan views.
type ProviderRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Slug  string  `json:"slug"`
	Color *string `json:"color,omitempty"`
	Logo  *string `json:"logo,omitempty"`
}

// ReviewView is one review as exposed in plan responses. Catalog entries
// carry nota-only reviews, so everything but the nota is omitted when empty.
type ReviewView struct {
	ID         string     `json:"id,omitempty"`
	Nota       int        `json:"nota"`
	Comentario string     `json:"comentario,omitempty"`
	UserName   string     `json:"userName,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

// PlanView is the single response shape for a plan, produced by one total
// masking function. For visitors the technical fields are nil/empty and
// Masked is true; expired promotions are nil for everyone.
type PlanView struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Provider    ProviderRef `json:"provider"`
	Price       float64     `json:"price"`
	Fidelidade  int         `json:"fidelidade"`
	Categorias  []string    `json:"categorias"`
	IsSponsored bool        `json:"isSponsored"`

	PromotionPrice     *float64   `json:"promotionPrice"`
	PromotionExpiresAt *time.Time `json:"promotionExpiresAt"`
	PromotionLabel     *string    `json:"promotionLabel"`

	RankingScore  float64 `json:"rankingScore"`
	ClickCount    int     `json:"clickCount"`
	AvgRating     float64 `json:"avgRating"`
	ReviewCount   int64   `json:"reviewCount"`
	FavoriteCount int64   `json:"favoriteCount"`
	IsFavorited   bool    `json:"isFavorited"`

	// Masked for visitors.
	DownloadSpeed    *int     `json:"downloadSpeed"`
	UploadSpeed      *int     `json:"uploadSpeed"`
	ServicosInclusos []string `json:"servicosInclusos"`
	IndicadoPara     []string `json:"indicadoPara"`
	Capacidade       *string  `json:"capacidade,omitempty"`

	Reviews []ReviewView `json:"reviews"`
	Masked  bool         `json:"_masked,omitempty"`

	CompatibilityScore float64 `json:"compatibilityScore,omitempty"`
}

// PlanListResponse is the catalog payload.
type PlanListResponse struct {
	Plans       []PlanView `json:"plans"`
	Total       int        `json:"total"`
	HiddenCount int        `json:"hiddenCount"`
	IsLoggedIn  bool       `json:"isLoggedIn"`
}

type CreateReviewRequest struct {
	Nota       int    `json:"nota" validate:"required,min=1,max=5"`
	Comentario string `json:"comentario" validate:"required,min=5,max=500"`
}

// RecommendRequest carries the questionnaire answers.
type RecommendRequest struct {
	Pessoas         int      `json:"pessoas" validate:"min=0,max=20"`
	Dispositivos    int      `json:"dispositivos" validate:"min=0,max=100"`
	Atividades      []string `json:"atividades"`
	VelocidadeAtual *int     `json:"velocidadeAtual,omitempty"`
	Cep             string   `json:"cep,omitempty" validate:"omitempty,is-cep"`
}

type CreatePlanRequest struct {
	Name               string   `json:"name" validate:"required,min=3"`
	DownloadSpeed      int      `json:"downloadSpeed" validate:"required,gt=0"`
	UploadSpeed        int      `json:"uploadSpeed" validate:"required,gt=0"`
	Price              float64  `json:"price" validate:"required,gt=0"`
	Fidelidade         int      `json:"fidelidade"`
	Capacidade         *string  `json:"capacidade,omitempty"`
	ServicosInclusos   []string `json:"servicosInclusos"`
	IndicadoPara       []string `json:"indicadoPara"`
	Categorias         []string `json:"categorias"`
	CepsAtendidos      []string `json:"cepsAtendidos"`
	PromotionPrice     *float64 `json:"promotionPrice,omitempty"`
	PromotionExpiresAt *string  `json:"promotionExpiresAt,omitempty"`
	PromotionLabel     *string  `json:"promotionLabel,omitempty"`
	CitySlug           string   `json:"citySlug"`
}

type UpdatePlanRequest struct {
	Name               *string  `json:"name,omitempty" validate:"omitempty,min=3"`
	DownloadSpeed      *int     `json:"downloadSpeed,omitempty" validate:"omitempty,gt=0"`
	UploadSpeed        *int     `json:"uploadSpeed,omitempty" validate:"omitempty,gt=0"`
	Price              *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Fidelidade         *int     `json:"fidelidade,omitempty"`
	Capacidade         *string  `json:"capacidade,omitempty"`
	ServicosInclusos   []string `json:"servicosInclusos,omitempty"`
	IndicadoPara       []string `json:"indicadoPara,omitempty"`
	Categorias         []string `json:"categorias,omitempty"`
	CepsAtendidos      []string `json:"cepsAtendidos,omitempty"`
	PromotionPrice     *float64 `json:"promotionPrice,omitempty"`
	PromotionExpiresAt *string  `json:"promotionExpiresAt,omitempty"`
	PromotionLabel     *string  `json:"promotionLabel,omitempty"`
	IsActive           *bool    `json:"isActive,omitempty"`
}
