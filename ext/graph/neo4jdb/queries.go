package neo4jdb

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/rushteam/cosrec/graph"
	"github.com/rushteam/cosrec/pkg/conv"
)

const listUsersQuery = `
MATCH (u:User)
OPTIONAL MATCH (u)-[:PURCHASED]->(p:Product)
OPTIONAL MATCH (b:Brand)-[:PRODUCES]->(p)
RETURN u,
       collect({id: p.id, category: p.category, brand: b.name, price: p.price}) AS purchases
`

const listProductsQuery = `
MATCH (p:Product)
OPTIONAL MATCH (p)-[:CONTAINS]->(i:Ingredient)
OPTIONAL MATCH (p)-[:HAS_EFFECT]->(e:Effect)
OPTIONAL MATCH (b:Brand)-[:PRODUCES]->(p)
OPTIONAL MATCH (p)-[:SUITABLE_FOR]->(s:SkinType)
RETURN p,
       collect(DISTINCT i.name) AS ingredients,
       collect(DISTINCT e.name) AS effects,
       collect(DISTINCT s.name) AS skin_types,
       b.name AS brand_name
`

const productsBySkinTypeQuery = `
MATCH (p:Product)-[:SUITABLE_FOR]->(s:SkinType {name: $skin_type})
OPTIONAL MATCH (b:Brand)-[:PRODUCES]->(p)
RETURN p, b.name AS brand_name
ORDER BY p.rating DESC, p.review_count DESC
LIMIT $limit
`

func (s *Store) ListUsers(ctx context.Context) ([]graph.UserRecord, error) {
	records, err := s.read(ctx, listUsersQuery, nil)
	if err != nil {
		return nil, err
	}

	users := make([]graph.UserRecord, 0, len(records))
	for _, rec := range records {
		nodeVal, ok := rec.Get("u")
		if !ok {
			continue
		}
		node, ok := nodeVal.(neo4j.Node)
		if !ok {
			continue
		}
		u := graph.UserRecord{
			ID:                  stringProp(node.Props, "id"),
			SkinType:            stringProp(node.Props, "skin_type"),
			SkinConcerns:        stringsProp(node.Props, "skin_concerns"),
			AllergicIngredients: stringsProp(node.Props, "allergic_ingredients"),
		}
		if u.ID == "" {
			continue
		}

		if rawPurchases, ok := rec.Get("purchases"); ok {
			if list, ok := rawPurchases.([]any); ok {
				for _, item := range list {
					m, ok := item.(map[string]any)
					if !ok {
						continue
					}
					productID, _ := conv.ToString(m["id"])
					if productID == "" {
						// OPTIONAL MATCH 未命中时 collect 产生空购买项
						continue
					}
					purchase := graph.PurchasedProduct{
						ProductID: productID,
					}
					purchase.Category, _ = conv.ToString(m["category"])
					purchase.Brand, _ = conv.ToString(m["brand"])
					purchase.Price = s.floatField(m["price"], "price", productID)
					u.Purchases = append(u.Purchases, purchase)
				}
			}
		}
		users = append(users, u)
	}
	return users, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]graph.ProductRecord, error) {
	records, err := s.read(ctx, listProductsQuery, nil)
	if err != nil {
		return nil, err
	}

	products := make([]graph.ProductRecord, 0, len(records))
	for _, rec := range records {
		nodeVal, ok := rec.Get("p")
		if !ok {
			continue
		}
		node, ok := nodeVal.(neo4j.Node)
		if !ok {
			continue
		}
		p := s.productFromProps(node.Props)
		if p.ID == "" {
			continue
		}

		if v, ok := rec.Get("ingredients"); ok {
			p.Ingredients = conv.SliceAnyToString(v)
		}
		if v, ok := rec.Get("effects"); ok {
			p.Effects = conv.SliceAnyToString(v)
		}
		if v, ok := rec.Get("skin_types"); ok {
			p.SuitableSkinTypes = conv.SliceAnyToString(v)
		}
		if v, ok := rec.Get("brand_name"); ok {
			p.BrandName, _ = conv.ToString(v)
		}
		products = append(products, p)
	}
	return products, nil
}

func (s *Store) ProductsBySkinType(ctx context.Context, skinType string, limit int) ([]graph.ProductRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	records, err := s.read(ctx, productsBySkinTypeQuery, map[string]any{
		"skin_type": skinType,
		"limit":     limit,
	})
	if err != nil {
		return nil, err
	}

	products := make([]graph.ProductRecord, 0, len(records))
	for _, rec := range records {
		nodeVal, ok := rec.Get("p")
		if !ok {
			continue
		}
		node, ok := nodeVal.(neo4j.Node)
		if !ok {
			continue
		}
		p := s.productFromProps(node.Props)
		if p.ID == "" {
			continue
		}
		if v, ok := rec.Get("brand_name"); ok {
			p.BrandName, _ = conv.ToString(v)
		}
		products = append(products, p)
	}
	return products, nil
}

// productFromProps 从产品节点属性构建记录；价格/评分非法时按缺失处理并记日志。
func (s *Store) productFromProps(props map[string]any) graph.ProductRecord {
	id := stringProp(props, "id")
	p := graph.ProductRecord{
		ID:          id,
		Name:        stringProp(props, "name"),
		Description: stringProp(props, "description"),
		Category:    stringProp(props, "category"),
	}
	p.Price = s.floatField(props["price"], "price", id)
	p.Rating = s.floatField(props["rating"], "rating", id)
	if cnt, ok := conv.ToInt(props["review_count"]); ok {
		p.ReviewCount = cnt
	}
	return p
}

// floatField 把图谱属性解析为 *float64；值存在但非数值时记警告并返回 nil。
func (s *Store) floatField(v any, field, productID string) *float64 {
	if v == nil {
		return nil
	}
	f, ok := conv.ToFloat64(v)
	if !ok {
		s.log.Warn("产品属性非数值，按缺失处理", "field", field, "product_id", productID)
		return nil
	}
	return &f
}

func stringProp(props map[string]any, key string) string {
	v, _ := conv.ToString(props[key])
	return v
}

func stringsProp(props map[string]any, key string) []string {
	return conv.SliceAnyToString(props[key])
}

var _ graph.Store = (*Store)(nil)
