package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	records := []InvestmentPayment{
		{DirectorID: "A", DirectorName: "Abe", Amount: 100, ExpectedInvestmentAmount: 500, SharePercentage: 25},
		{DirectorID: "A", DirectorName: "Abe", Amount: 50, ExpectedInvestmentAmount: 500, SharePercentage: 25},
		{DirectorID: "B", DirectorName: "Bea", Amount: 200, ExpectedInvestmentAmount: 200, SharePercentage: 25},
	}

	got := Aggregate(records)

	want := []InvestmentRollup{
		{DirectorID: "A", Name: "Abe", TotalInvestmentAmount: 150, ExpectedInvestmentAmount: 500, DueInvestment: 350, SharePercentage: 25},
		{DirectorID: "B", Name: "Bea", TotalInvestmentAmount: 200, ExpectedInvestmentAmount: 200, DueInvestment: 0, SharePercentage: 25},
	}
	assert.Equal(t, want, got, "rollups must keep first-appearance order")
}

func TestAggregate_orderIndependentWithinDirector(t *testing.T) {
	fwd := []InvestmentPayment{
		{DirectorID: "A", DirectorName: "Abe", Amount: 100, ExpectedInvestmentAmount: 500},
		{DirectorID: "A", DirectorName: "Abe", Amount: 50, ExpectedInvestmentAmount: 500},
	}
	rev := []InvestmentPayment{fwd[1], fwd[0]}

	assert.Equal(t, Aggregate(fwd), Aggregate(rev))
}

func TestAggregate_empty(t *testing.T) {
	got := Aggregate(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
