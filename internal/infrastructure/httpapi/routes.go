package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yasar2385/family-address-book/internal/application/handlers"
	"github.com/yasar2385/family-address-book/internal/domain/entities"
)

func (s *Server) listMembers(w http.ResponseWriter, r *http.Request) {
	result, err := s.h.Directory.HandleFilter(r.Context(), criteria(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) filterOptions(w http.ResponseWriter, r *http.Request) {
	result, err := s.h.Directory.HandleFilter(r.Context(), criteria(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Options)
}

func (s *Server) getMember(w http.ResponseWriter, r *http.Request) {
	m, err := s.h.Members.HandleGet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) createMember(w http.ResponseWriter, r *http.Request) {
	in := entities.Member{IsAlive: true}
	if err := decode(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	in.ID = ""

	m, err := s.h.Members.HandleCreate(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) updateMember(w http.ResponseWriter, r *http.Request) {
	var patch handlers.MemberPatch
	if err := decode(w, r, &patch); err != nil {
		s.fail(w, r, err)
		return
	}

	m, err := s.h.Members.HandleUpdate(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) editLocation(w http.ResponseWriter, r *http.Request) {
	var edit entities.LocationEdit
	if err := decode(w, r, &edit); err != nil {
		s.fail(w, r, err)
		return
	}

	m, err := s.h.Members.HandleEditLocation(r.Context(), chi.URLParam(r, "id"), edit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) deleteMember(w http.ResponseWriter, r *http.Request) {
	if err := s.h.Members.HandleDelete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type linkRequest struct {
	Member1ID    string `json:"member1Id"`
	Member2ID    string `json:"member2Id"`
	RelationType string `json:"relationType"`
}

func (s *Server) listRelations(w http.ResponseWriter, r *http.Request) {
	infos, err := s.h.Relations.HandleList(r.Context(), r.URL.Query().Get("member"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) createRelation(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	rel, err := s.h.Relations.HandleLink(r.Context(), req.Member1ID, req.RelationType, req.Member2ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rel)
}

func (s *Server) deleteRelation(w http.ResponseWriter, r *http.Request) {
	if err := s.h.Relations.HandleUnlink(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) tree(w http.ResponseWriter, r *http.Request) {
	result, err := s.h.Directory.HandleTree(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) forest(w http.ResponseWriter, r *http.Request) {
	result, err := s.h.Directory.HandleForest(r.Context(), criteria(r), expanded(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) areas(w http.ResponseWriter, r *http.Request) {
	result, err := s.h.Directory.HandleAreas(r.Context(), criteria(r), expanded(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) mapMarkers(w http.ResponseWriter, r *http.Request) {
	markers, err := s.h.Directory.HandleMap(r.Context(), criteria(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, markers)
}

func (s *Server) coordinates(w http.ResponseWriter, r *http.Request) {
	c := s.h.Directory.HandleCoordinates(r.URL.Query().Get("url"))
	if c == nil {
		writeError(w, http.StatusNotFound, errNoCoordinates)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
