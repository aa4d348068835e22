package table

import "github.com/alexisbeaulieu97/tabular/internal/plugin"

// Extension points, in the order the catalog declares them.
var (
	ReduceOptions          = plugin.NewReduce[Options, Meta]("useReduceOptions")
	InstanceAfterState     = plugin.NewDecorate[*Instance, Meta]("useInstanceAfterState")
	ReduceColumns          = plugin.NewReduce[[]*Column, Meta]("useReduceColumns")
	ReduceAllColumns       = plugin.NewReduce[[]*Column, Meta]("useReduceAllColumns")
	ReduceLeafColumns      = plugin.NewReduce[[]*Column, Meta]("useReduceLeafColumns")
	DecorateColumn         = plugin.NewDecorate[*Column, Meta]("decorateColumn")
	ReduceHeaderGroups     = plugin.NewReduce[[]*HeaderGroup, Meta]("useReduceHeaderGroups")
	ReduceFooterGroups     = plugin.NewReduce[[]*HeaderGroup, Meta]("useReduceFooterGroups")
	ReduceFlatHeaders      = plugin.NewReduce[[]*Header, Meta]("useReduceFlatHeaders")
	DecorateHeader         = plugin.NewDecorate[*Header, Meta]("decorateHeader")
	DecorateRow            = plugin.NewDecorate[*Row, Meta]("decorateRow")
	DecorateCell           = plugin.NewDecorate[*Cell, Meta]("decorateCell")
	InstanceAfterDataModel = plugin.NewDecorate[*Instance, Meta]("useInstanceAfterDataModel")

	ReduceTableProps       = plugin.NewReduce[Props, Meta]("reduceTableProps")
	ReduceTableBodyProps   = plugin.NewReduce[Props, Meta]("reduceTableBodyProps")
	ReduceTableHeadProps   = plugin.NewReduce[Props, Meta]("reduceTableHeadProps")
	ReduceTableFooterProps = plugin.NewReduce[Props, Meta]("reduceTableFooterProps")
	ReduceHeaderGroupProps = plugin.NewReduce[Props, Meta]("reduceHeaderGroupProps")
	ReduceFooterGroupProps = plugin.NewReduce[Props, Meta]("reduceFooterGroupProps")
	ReduceHeaderProps      = plugin.NewReduce[Props, Meta]("reduceHeaderProps")
	ReduceFooterProps      = plugin.NewReduce[Props, Meta]("reduceFooterProps")
	ReduceRowProps         = plugin.NewReduce[Props, Meta]("reduceRowProps")
	ReduceCellProps        = plugin.NewReduce[Props, Meta]("reduceCellProps")
)

// Catalog lists every extension point the table pipeline invokes.
var Catalog = plugin.NewCatalog(
	ReduceOptions,
	InstanceAfterState,
	ReduceColumns,
	ReduceAllColumns,
	ReduceLeafColumns,
	DecorateColumn,
	ReduceHeaderGroups,
	ReduceFooterGroups,
	ReduceFlatHeaders,
	DecorateHeader,
	DecorateRow,
	DecorateCell,
	InstanceAfterDataModel,
	ReduceTableProps,
	ReduceTableBodyProps,
	ReduceTableHeadProps,
	ReduceTableFooterProps,
	ReduceHeaderGroupProps,
	ReduceFooterGroupProps,
	ReduceHeaderProps,
	ReduceFooterProps,
	ReduceRowProps,
	ReduceCellProps,
)
