package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/lineup --output domain/lineup --outpkg lineupmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Lookup --dir ../domain/person --output domain/person --outpkg personmock --filename lookup_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Lookup --dir ../domain/training --output domain/training --outpkg trainingmock --filename lookup_mock.go
