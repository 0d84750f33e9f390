package repository

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// TransactionListFilter 查询交易流水的过滤条件
type TransactionListFilter struct {
	Limit      int
	CustomerID uint
}
