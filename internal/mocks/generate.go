package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name TeamReader --dir ../usecase --output usecase --outpkg querymock --filename team_reader_mock.go
