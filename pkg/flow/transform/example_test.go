package transform_test

import (
	"fmt"

	"github.com/matzehuels/moneyflow/pkg/flow"
	"github.com/matzehuels/moneyflow/pkg/flow/transform"
)

func ExampleAssignColumns() {
	g := flow.Graph{
		Labels:  []string{"Salary", "Budget", "Rent", "Food", "Gift"},
		Sources: []int{0, 1, 1},
		Targets: []int{1, 2, 3},
		Values:  []float64{3000, 1200, 600},
	}

	columns := transform.AssignColumns(g)
	for i, label := range g.Labels {
		fmt.Printf("%s: %d\n", label, columns[i])
	}
	// Output:
	// Salary: 0
	// Budget: 1
	// Rent: 2
	// Food: 2
	// Gift: 3
}
