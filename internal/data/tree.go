package data

import (
	"encoding/json"
)

// UserTree is one user's complete shopping and to-do data.
type UserTree struct {
	UserID        int64          `json:"user_id"`
	FirstName     *string        `json:"first_name"`
	LastName      *string        `json:"last_name"`
	Email         *string        `json:"email"`
	ShoppingLists []ShoppingList `json:"shopping_lists"`
	TodoLists     []TodoList     `json:"todo_lists"`
}

// ShoppingList is a user's list as instantiated at one shop.
type ShoppingList struct {
	ListShopID    int64   `json:"list_shop_id"`
	ShopName      *string `json:"shop_name"`
	Address       *string `json:"address"`
	ContactNumber *string `json:"contact_number"`
	Website       *string `json:"website"`
	Aisles        []Aisle `json:"aisles"`
}

type Aisle struct {
	AisleID     int64     `json:"aisle_id"`
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Products    []Product `json:"products"`
}

// Product carries the notes, quantity and price recorded for one aisle of one
// list-shop. Quantity and price are passed through exactly as the store
// renders them, so 1.50 stays 1.50 and a text or money column stays a string.
type Product struct {
	ProductID int64           `json:"product_id"`
	Name      *string         `json:"name"`
	Notes     *string         `json:"notes"`
	Quantity  json.RawMessage `json:"quantity"`
	Price     json.RawMessage `json:"price"`
}

type TodoList struct {
	ListID      int64       `json:"list_id"`
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Entries     []TodoEntry `json:"entries"`
}

// TodoEntry passes status through with whatever JSON type the column has.
type TodoEntry struct {
	EntryID     int64           `json:"entry_id"`
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	DueDate     *string         `json:"due_date"`
	Status      json.RawMessage `json:"status"`
}

type aisleRow struct {
	ListShopID int64 `json:"list_shop_id"`
	Aisle
}

type productRow struct {
	ListShopID int64 `json:"list_shop_id"`
	AisleID    int64 `json:"aisle_id"`
	Product
}

type entryRow struct {
	ListID int64 `json:"list_id"`
	TodoEntry
}

// aisleKey identifies an aisle inside one list-shop. Products are always
// grouped under this pair, never under the aisle id alone.
type aisleKey struct {
	listShopID int64
	aisleID    int64
}

// treeRows holds the flat rows fetched for one user.
type treeRows struct {
	user      UserTree
	listShops []ShoppingList
	aisles    []aisleRow
	products  []productRow
	todoLists []TodoList
	entries   []entryRow
}

// assemble nests the flat rows into a UserTree. Input order is kept at every
// level and every child collection is non-nil.
func (tr treeRows) assemble() *UserTree {
	productsByAisle := make(map[aisleKey][]Product)
	for _, p := range tr.products {
		key := aisleKey{listShopID: p.ListShopID, aisleID: p.AisleID}
		productsByAisle[key] = append(productsByAisle[key], p.Product)
	}

	aislesByListShop := make(map[int64][]Aisle)
	for _, a := range tr.aisles {
		aisle := a.Aisle
		aisle.Products = orEmpty(productsByAisle[aisleKey{listShopID: a.ListShopID, aisleID: a.AisleID}])
		aislesByListShop[a.ListShopID] = append(aislesByListShop[a.ListShopID], aisle)
	}

	shoppingLists := make([]ShoppingList, 0, len(tr.listShops))
	for _, ls := range tr.listShops {
		ls.Aisles = orEmpty(aislesByListShop[ls.ListShopID])
		shoppingLists = append(shoppingLists, ls)
	}

	entriesByList := make(map[int64][]TodoEntry)
	for _, e := range tr.entries {
		entriesByList[e.ListID] = append(entriesByList[e.ListID], e.TodoEntry)
	}

	todoLists := make([]TodoList, 0, len(tr.todoLists))
	for _, tl := range tr.todoLists {
		tl.Entries = orEmpty(entriesByList[tl.ListID])
		todoLists = append(todoLists, tl)
	}

	tree := tr.user
	tree.ShoppingLists = shoppingLists
	tree.TodoLists = todoLists
	return &tree
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
