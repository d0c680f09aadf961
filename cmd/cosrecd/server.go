package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rushteam/cosrec/core"
	"github.com/rushteam/cosrec/engine"
	"github.com/rushteam/cosrec/pkg/logger"
)

const defaultLimit = 10

type server struct {
	eng *engine.Engine
	log *logger.Logger
}

func (s *server) routes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/recommendations/user/:user_id", s.handleRecommend)
		api.GET("/recommendations/skin-type/:skin_type", s.handleSkinType)
		api.GET("/products/:product_id/similar", s.handleSimilar)
		api.POST("/admin/refresh", s.handleRefresh)
	}
}

// recommendationView 把候选打平为接口返回结构，产品属性来自召回阶段写入的 Meta。
type recommendationView struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Category    string  `json:"category,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Score       float64 `json:"score"`
	Reason      string  `json:"reason"`
	Confidence  float64 `json:"confidence"`
}

func toViews(cands []*core.Candidate) []recommendationView {
	views := make([]recommendationView, 0, len(cands))
	for _, c := range cands {
		v := recommendationView{
			ProductID:  c.ProductID,
			Score:      c.Score,
			Reason:     c.Reason,
			Confidence: c.Confidence,
		}
		if name, ok := c.Meta["name"].(string); ok {
			v.ProductName = name
		}
		if category, ok := c.Meta["category"].(string); ok {
			v.Category = category
		}
		if brand, ok := c.Meta["brand"].(string); ok {
			v.Brand = brand
		}
		if price, ok := c.Meta["price"].(float64); ok {
			v.Price = price
		}
		views = append(views, v)
	}
	return views
}

func parseLimit(c *gin.Context) int {
	raw := c.Query("limit")
	if raw == "" {
		return defaultLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return defaultLimit
	}
	return limit
}

func (s *server) handleRecommend(c *gin.Context) {
	userID := c.Param("user_id")
	method := c.DefaultQuery("method", "hybrid")
	limit := parseLimit(c)

	var (
		cands []*core.Candidate
		err   error
	)
	switch method {
	case "hybrid":
		cands, err = s.eng.RecommendHybrid(c.Request.Context(), userID, limit)
	case "collaborative":
		cands, err = s.eng.RecommendCollaborative(c.Request.Context(), userID, limit)
	case "content":
		cands, err = s.eng.RecommendContent(c.Request.Context(), userID, limit)
	case "graph":
		cands, err = s.eng.RecommendGraph(c.Request.Context(), userID, limit)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知推荐方法: " + method})
		return
	}
	if err != nil {
		s.log.Error("推荐失败", "user_id", userID, "method", method, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "推荐服务异常"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":         userID,
		"method":          method,
		"count":           len(cands),
		"recommendations": toViews(cands),
	})
}

func (s *server) handleSkinType(c *gin.Context) {
	skinType := c.Param("skin_type")
	limit := parseLimit(c)

	cands, err := s.eng.RecommendBySkinType(c.Request.Context(), skinType, limit)
	if err != nil {
		s.log.Error("肤质推荐失败", "skin_type", skinType, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "推荐服务异常"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"skin_type":       skinType,
		"count":           len(cands),
		"recommendations": toViews(cands),
	})
}

func (s *server) handleSimilar(c *gin.Context) {
	productID := c.Param("product_id")
	limit := parseLimit(c)

	similar := s.eng.SimilarProducts(c.Request.Context(), productID, limit)
	c.JSON(http.StatusOK, gin.H{
		"product_id": productID,
		"count":      len(similar),
		"similar":    similar,
	})
}

func (s *server) handleRefresh(c *gin.Context) {
	if err := s.eng.RefreshSnapshot(c.Request.Context()); err != nil {
		s.log.Error("手动刷新快照失败", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "快照刷新失败"})
		return
	}
	snap := s.eng.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": snap.Version,
	})
}

func (s *server) handleHealth(c *gin.Context) {
	snap := s.eng.Snapshot()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "snapshot not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"version":  snap.Version,
		"users":    len(snap.Profiles),
		"products": len(snap.Features),
		"built_at": snap.BuiltAt,
	})
}
