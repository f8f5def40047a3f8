package product

import (
	"context"
	"log"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"velora_back_end/internal/cache"
	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// ================== PIPELINE DE LISTE ==================

// filterByCategory garde les produits de la catégorie (insensible à la casse)
func filterByCategory(products []models.Product, category string) []models.Product {
	if category == "" {
		return products
	}
	out := []models.Product{}
	for _, p := range products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// sortProducts trie par prix si demandé, sinon du plus récent au plus ancien
func sortProducts(products []models.Product, order string) {
	switch order {
	case "asc":
		sort.Slice(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case "desc":
		sort.Slice(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	default:
		sort.Slice(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	}
}

// paginate découpe la liste ; une page au-delà de la fin est vide, pas une erreur
func paginate(products []models.Product, page, limit int) ([]models.Product, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	pages := int(math.Ceil(float64(len(products)) / float64(limit)))

	start := (page - 1) * limit
	if start >= len(products) {
		return []models.Product{}, pages
	}
	end := start + limit
	if end > len(products) {
		end = len(products)
	}
	return products[start:end], pages
}

// matchesQuery : recherche de secours quand Elasticsearch est indisponible
func matchesQuery(p models.Product, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}

// ================== ACCÈS SCYLLA ==================

func scanAllProducts() ([]models.Product, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`
		SELECT product_id, name, description, price, category, image, stock,
			rating, reviews, created_at, updated_at
		FROM products`).Iter()

	products := []models.Product{}
	for {
		var p models.Product
		if !iter.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
			&p.Image, &p.Stock, &p.Rating, &p.Reviews, &p.CreatedAt, &p.UpdatedAt) {
			break
		}
		products = append(products, p)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return products, nil
}

func fetchProduct(productID gocql.UUID) (models.Product, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return models.Product{}, err
	}

	var p models.Product
	if err := session.Query(`
		SELECT product_id, name, description, price, category, image, stock,
			rating, reviews, created_at, updated_at
		FROM products WHERE product_id = ?`, productID).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
			&p.Image, &p.Stock, &p.Rating, &p.Reviews, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// listProducts lit le catalogue complet, via le cache Redis si possible
func listProducts(ctx context.Context) ([]models.Product, error) {
	if products, ok := cache.GetProductList(ctx); ok {
		return products, nil
	}

	products, err := scanAllProducts()
	if err != nil {
		return nil, err
	}

	cache.SetProductList(ctx, products)
	return products, nil
}

// signProductImages remplace les URLs d'images MinIO par des URLs signées
// valables 24h ; en cas d'échec l'URL d'origine est conservée
func signProductImages(ctx context.Context, products []models.Product) {
	if database.MinIO == nil {
		return
	}
	for i := range products {
		if products[i].Image == "" {
			continue
		}
		if signed, err := services.GenerateSignedURL(ctx, products[i].Image, 24*time.Hour); err == nil {
			products[i].Image = signed
		}
	}
}

// ================== HANDLERS PUBLICS ==================

// GetAllProducts liste le catalogue : filtre catégorie, tri, pagination
func GetAllProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	category := c.Query("category")
	sortOrder := c.Query("sort")

	products, err := listProducts(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	products = filterByCategory(products, category)
	sortProducts(products, sortOrder)

	total := len(products)
	pageItems, pages := paginate(products, page, limit)
	signProductImages(context.Background(), pageItems)

	c.JSON(http.StatusOK, gin.H{
		"products": pageItems,
		"total":    total,
		"page":     page,
		"limit":    limit,
		"pages":    pages,
	})
}

// GetProductByID renvoie un produit
func GetProductByID(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	p, err := fetchProduct(productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	single := []models.Product{p}
	signProductImages(context.Background(), single)

	c.JSON(http.StatusOK, gin.H{"product": single[0]})
}

// SearchProducts interroge Elasticsearch, avec repli sur un parcours
// en mémoire du catalogue si l'index est indisponible
func SearchProducts(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre de recherche manquant"})
		return
	}

	if hits, err := services.SearchProducts(query); err == nil {
		c.JSON(http.StatusOK, gin.H{"results": hits, "count": len(hits)})
		return
	}

	// Repli : scan du catalogue
	products, err := listProducts(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	results := []models.Product{}
	for _, p := range products {
		if matchesQuery(p, query) {
			results = append(results, p)
		}
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

// ================== HANDLERS ADMIN ==================

// CreateProduct ajoute un produit au catalogue
func CreateProduct(c *gin.Context) {
	var input struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Category    string  `json:"category"`
		Image       string  `json:"image"`
		Stock       int     `json:"stock"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.Name == "" || input.Description == "" || input.Price <= 0 ||
		input.Category == "" || input.Image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tous les champs sont requis"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now()
	p := models.Product{
		ID:          gocql.TimeUUID(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Image:       input.Image,
		Stock:       input.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := session.Query(`
		INSERT INTO products (product_id, name, description, price, category,
			image, stock, rating, reviews, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.Image, p.Stock,
		p.Rating, p.Reviews, p.CreatedAt, p.UpdatedAt).Exec(); err != nil {
		log.Printf("❌ Erreur création produit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	cache.InvalidateProducts(context.Background())
	services.IndexProduct(p)

	log.Printf("🆕 Produit créé : %s (%s)", p.Name, p.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Produit créé", "product": p})
}

// UpdateProduct modifie les champs fournis d'un produit existant
func UpdateProduct(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	p, err := fetchProduct(productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	var input struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Category    *string  `json:"category"`
		Image       *string  `json:"image"`
		Stock       *int     `json:"stock"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Prix invalide"})
			return
		}
		p.Price = *input.Price
	}
	if input.Category != nil {
		p.Category = *input.Category
	}
	if input.Image != nil {
		p.Image = *input.Image
	}
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	p.UpdatedAt = time.Now()

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`
		UPDATE products SET name = ?, description = ?, price = ?, category = ?,
			image = ?, stock = ?, updated_at = ?
		WHERE product_id = ?`,
		p.Name, p.Description, p.Price, p.Category, p.Image, p.Stock,
		p.UpdatedAt, p.ID).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour produit %s: %v", p.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	cache.InvalidateProducts(context.Background())
	services.IndexProduct(p)

	c.JSON(http.StatusOK, gin.H{"message": "Produit mis à jour", "product": p})
}

// DeleteProduct retire un produit du catalogue et de l'index de recherche
func DeleteProduct(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	if _, err := fetchProduct(productID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM products WHERE product_id = ?`, productID).Exec(); err != nil {
		log.Printf("❌ Erreur suppression produit %s: %v", productID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}

	cache.InvalidateProducts(context.Background())
	services.RemoveProduct(productID.String())

	log.Printf("🧹 Produit %s supprimé", productID)
	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}
