// Package orgtest provides an in-memory Organizations API for tests.
package orgtest

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/organizations"
	"github.com/aws/aws-sdk-go/service/organizations/organizationsiface"
)

const RootID = "r-root"

func NewFakeOrganization() *FakeOrganization {
	return &FakeOrganization{
		parents:  map[string]*organizations.Parent{},
		ouNames:  map[string]string{},
		PageSize: 2,
		Errors:   map[string]error{},

		DescribeOUCalls: map[string]int{},
	}
}

// FakeOrganization mimics an AWS organization for testing. Unimplemented
// methods of organizationsiface.OrganizationsAPI panic.
type FakeOrganization struct {
	accounts []string
	parents  map[string]*organizations.Parent
	ouNames  map[string]string

	// PageSize is the number of accounts returned per ListAccounts page.
	PageSize int
	// Errors maps "Operation" or "Operation/ID" to an error to return.
	Errors map[string]error

	ListParentsCalls  int
	DescribeOUCalls   map[string]int
	ListAccountsPages int

	organizationsiface.OrganizationsAPI
}

// AddOU registers an OU under parentID, which is RootID or another OU.
func (f *FakeOrganization) AddOU(id, name, parentID string) {
	f.ouNames[id] = name
	f.parents[id] = f.parentOf(parentID)
}

// AddAccount registers an account under parentID, which is RootID or an OU.
func (f *FakeOrganization) AddAccount(id, parentID string) {
	f.accounts = append(f.accounts, id)
	f.parents[id] = f.parentOf(parentID)
}

// SetParent overrides the parent of childID with an arbitrary type.
func (f *FakeOrganization) SetParent(childID, parentID, parentType string) {
	f.parents[childID] = &organizations.Parent{Id: aws.String(parentID), Type: aws.String(parentType)}
}

// RemoveParent makes childID report no parents.
func (f *FakeOrganization) RemoveParent(childID string) {
	delete(f.parents, childID)
}

func (f *FakeOrganization) parentOf(id string) *organizations.Parent {
	parentType := organizations.ParentTypeOrganizationalUnit
	if id == RootID {
		parentType = organizations.ParentTypeRoot
	}
	return &organizations.Parent{Id: aws.String(id), Type: aws.String(parentType)}
}

func (f *FakeOrganization) err(op, id string) error {
	if err, ok := f.Errors[op+"/"+id]; ok {
		return err
	}
	return f.Errors[op]
}

func (f *FakeOrganization) ListAccountsPagesWithContext(_ aws.Context, _ *organizations.ListAccountsInput, fn func(*organizations.ListAccountsOutput, bool) bool, _ ...request.Option) error {
	if err := f.err("ListAccounts", ""); err != nil {
		return err
	}
	size := f.PageSize
	if size < 1 {
		size = len(f.accounts) + 1
	}
	for start := 0; ; start += size {
		end := start + size
		if end > len(f.accounts) {
			end = len(f.accounts)
		}
		out := &organizations.ListAccountsOutput{}
		for _, id := range f.accounts[start:end] {
			out.Accounts = append(out.Accounts, &organizations.Account{Id: aws.String(id)})
		}
		f.ListAccountsPages++
		lastPage := end >= len(f.accounts)
		if !fn(out, lastPage) || lastPage {
			return nil
		}
	}
}

func (f *FakeOrganization) ListParentsWithContext(_ aws.Context, in *organizations.ListParentsInput, _ ...request.Option) (*organizations.ListParentsOutput, error) {
	f.ListParentsCalls++
	id := aws.StringValue(in.ChildId)
	if err := f.err("ListParents", id); err != nil {
		return nil, err
	}
	out := &organizations.ListParentsOutput{}
	if parent, ok := f.parents[id]; ok {
		out.Parents = []*organizations.Parent{parent}
	}
	return out, nil
}

func (f *FakeOrganization) DescribeOrganizationalUnitWithContext(_ aws.Context, in *organizations.DescribeOrganizationalUnitInput, _ ...request.Option) (*organizations.DescribeOrganizationalUnitOutput, error) {
	id := aws.StringValue(in.OrganizationalUnitId)
	f.DescribeOUCalls[id]++
	if err := f.err("DescribeOrganizationalUnit", id); err != nil {
		return nil, err
	}
	name, ok := f.ouNames[id]
	if !ok {
		return nil, awserr.New(organizations.ErrCodeOrganizationalUnitNotFoundException, fmt.Sprintf("OU %s does not exist", id), nil)
	}
	return &organizations.DescribeOrganizationalUnitOutput{
		OrganizationalUnit: &organizations.OrganizationalUnit{Id: aws.String(id), Name: aws.String(name)},
	}, nil
}
