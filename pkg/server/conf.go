package server

// Bootstrap 히스토리 서버 설정 루트
type Bootstrap struct {
	Server *Server
	Store  *Store
}

// Server 서버 섹션
type Server struct {
	Http *HTTP
}

// HTTP HTTP 리스너 설정
type HTTP struct {
	Addr    string
	Timeout string
}

// Store 조회 대상 CSV 저장소 설정
type Store struct {
	CsvPath string
}
