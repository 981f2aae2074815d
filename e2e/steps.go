package e2e

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"actavc/e2e/steps/common"
	"actavc/e2e/steps/session"
)

// RegisterSteps registers all step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	session.RegisterSteps(ctx, tc)

	ctx.Step(`^I look up the DID of address "([^"]*)"$`, tc.lookUpDID)
	ctx.Step(`^I save the DID of my wallet$`, tc.saveDID)
	ctx.Step(`^the DID should encode my wallet address$`, tc.didShouldEncodeWallet)
	ctx.Step(`^I issue a credential with:$`, tc.issueCredential)
	ctx.Step(`^I request the example credential form$`, tc.exampleForm)
}

func (tc *TestContext) lookUpDID(ctx context.Context, address string) error {
	return tc.GET("/identity/did?address="+address, nil)
}

func (tc *TestContext) saveDID(ctx context.Context) error {
	return tc.POST("/identity/did", map[string]any{})
}

func (tc *TestContext) didShouldEncodeWallet(ctx context.Context) error {
	did, err := tc.GetResponseField("did")
	if err != nil {
		return err
	}
	want := "did:pkh:stellar:testnet:" + tc.WalletAddress
	if did != want {
		return fmt.Errorf("expected DID %s but got %v", want, did)
	}
	return nil
}

func (tc *TestContext) issueCredential(ctx context.Context, table *godog.Table) error {
	form := map[string]string{}
	for _, row := range table.Rows {
		if len(row.Cells) != 2 {
			return fmt.Errorf("expected two columns per row")
		}
		form[row.Cells[0].Value] = row.Cells[1].Value
	}
	return tc.POST("/credentials", form)
}

func (tc *TestContext) exampleForm(ctx context.Context) error {
	return tc.GET("/credentials/example", nil)
}
