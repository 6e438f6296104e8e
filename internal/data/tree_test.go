package data

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAssemble_EmptyBranchesAreArrays(t *testing.T) {
	tr := treeRows{user: UserTree{UserID: 4, FirstName: strPtr("Bo")}}

	tree := tr.assemble()

	out, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"user_id": 4, "first_name": "Bo", "last_name": null, "email": null,
		"shopping_lists": [], "todo_lists": []
	}`, string(out))
}

func TestAssemble_ProductsGroupedByListShopAndAisle(t *testing.T) {
	tr := treeRows{
		user: UserTree{UserID: 1},
		listShops: []ShoppingList{
			{ListShopID: 10, ShopName: strPtr("Corner Mart")},
			{ListShopID: 11, ShopName: strPtr("Big Store")},
		},
		aisles: []aisleRow{
			{ListShopID: 10, Aisle: Aisle{AisleID: 3, Name: strPtr("Produce")}},
			{ListShopID: 11, Aisle: Aisle{AisleID: 3, Name: strPtr("Produce")}},
			{ListShopID: 11, Aisle: Aisle{AisleID: 4, Name: strPtr("Bakery")}},
		},
		products: []productRow{
			{ListShopID: 10, AisleID: 3, Product: Product{ProductID: 7, Name: strPtr("Apples")}},
			{ListShopID: 11, AisleID: 3, Product: Product{ProductID: 8, Name: strPtr("Pears")}},
			{ListShopID: 11, AisleID: 3, Product: Product{ProductID: 7, Name: strPtr("Apples")}},
		},
	}

	tree := tr.assemble()

	require.Len(t, tree.ShoppingLists, 2)

	corner := tree.ShoppingLists[0]
	require.Len(t, corner.Aisles, 1)
	require.Len(t, corner.Aisles[0].Products, 1)
	assert.Equal(t, int64(7), corner.Aisles[0].Products[0].ProductID)

	big := tree.ShoppingLists[1]
	require.Len(t, big.Aisles, 2)
	assert.Len(t, big.Aisles[0].Products, 2)
	assert.Equal(t, int64(8), big.Aisles[0].Products[0].ProductID)
	assert.NotNil(t, big.Aisles[1].Products)
	assert.Empty(t, big.Aisles[1].Products)
}

func TestAssemble_ProductsWithoutLinkedAisleAreDropped(t *testing.T) {
	tr := treeRows{
		user:      UserTree{UserID: 1},
		listShops: []ShoppingList{{ListShopID: 10}},
		aisles:    []aisleRow{{ListShopID: 10, Aisle: Aisle{AisleID: 3}}},
		products: []productRow{
			{ListShopID: 10, AisleID: 9, Product: Product{ProductID: 7}},
		},
	}

	tree := tr.assemble()

	require.Len(t, tree.ShoppingLists[0].Aisles, 1)
	assert.Empty(t, tree.ShoppingLists[0].Aisles[0].Products)
}

func TestAssemble_TodoBranchIndependentOfShopping(t *testing.T) {
	tr := treeRows{
		user: UserTree{UserID: 2},
		todoLists: []TodoList{
			{ListID: 5, Name: strPtr("Chores")},
			{ListID: 6, Name: strPtr("Errands")},
		},
		entries: []entryRow{
			{ListID: 5, TodoEntry: TodoEntry{EntryID: 1, Name: strPtr("Dishes"), Status: json.RawMessage(`"open"`)}},
			{ListID: 5, TodoEntry: TodoEntry{EntryID: 2, Name: strPtr("Laundry")}},
		},
	}

	tree := tr.assemble()

	assert.NotNil(t, tree.ShoppingLists)
	assert.Empty(t, tree.ShoppingLists)
	require.Len(t, tree.TodoLists, 2)
	assert.Len(t, tree.TodoLists[0].Entries, 2)
	assert.NotNil(t, tree.TodoLists[1].Entries)
	assert.Empty(t, tree.TodoLists[1].Entries)

	out, err := json.Marshal(tree.TodoLists[0].Entries)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"entry_id": 1, "name": "Dishes", "description": null, "due_date": null, "status": "open"},
		{"entry_id": 2, "name": "Laundry", "description": null, "due_date": null, "status": null}
	]`, string(out))
}

func TestAssemble_PriceKeepsStoreText(t *testing.T) {
	tr := treeRows{
		user:      UserTree{UserID: 1},
		listShops: []ShoppingList{{ListShopID: 10}},
		aisles:    []aisleRow{{ListShopID: 10, Aisle: Aisle{AisleID: 3}}},
		products: []productRow{
			{ListShopID: 10, AisleID: 3, Product: Product{ProductID: 7, Quantity: json.RawMessage(`3`), Price: json.RawMessage(`1.50`)}},
		},
	}

	out, err := json.Marshal(tr.assemble())
	require.NoError(t, err)
	assert.Contains(t, string(out), `"quantity":3,"price":1.50`)
}

func TestAssemble_Idempotent(t *testing.T) {
	tr := treeRows{
		user:      UserTree{UserID: 1},
		listShops: []ShoppingList{{ListShopID: 10}},
		aisles:    []aisleRow{{ListShopID: 10, Aisle: Aisle{AisleID: 3}}},
		products:  []productRow{{ListShopID: 10, AisleID: 3, Product: Product{ProductID: 7}}},
		todoLists: []TodoList{{ListID: 5}},
	}

	first, err := json.Marshal(tr.assemble())
	require.NoError(t, err)
	second, err := json.Marshal(tr.assemble())
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}
