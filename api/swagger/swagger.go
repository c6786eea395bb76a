package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "Training Portal API",
    "description": "Registration, verification and student management for the training institute portal",
    "version": "1.0.0"
  },
  "basePath": "/api/v1",
  "schemes": [
    "http",
    "https"
  ],
  "securityDefinitions": {
    "BearerAuth": {
      "type": "apiKey",
      "name": "Authorization",
      "in": "header"
    }
  },
  "tags": [
    {
      "name": "Public"
    },
    {
      "name": "Auth"
    },
    {
      "name": "Dashboard"
    },
    {
      "name": "Students"
    },
    {
      "name": "Attendance"
    },
    {
      "name": "Fees"
    },
    {
      "name": "Notes"
    },
    {
      "name": "Tasks"
    },
    {
      "name": "Projects"
    },
    {
      "name": "Resume"
    }
  ],
  "paths": {
    "/public/register": {
      "post": {
        "tags": [
          "Public"
        ],
        "summary": "Register interest",
        "parameters": [
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/RegisterLeadRequest"
            }
          }
        ],
        "responses": {
          "201": {
            "description": "Created",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    },
    "/public/verify/{studentId}": {
      "get": {
        "tags": [
          "Public"
        ],
        "summary": "Verify a student",
        "parameters": [
          {
            "name": "studentId",
            "in": "path",
            "required": true,
            "type": "string",
            "description": "Student ID"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    },
    "/public/verify/{studentId}/qr": {
      "get": {
        "tags": [
          "Public"
        ],
        "summary": "Verification QR code",
        "parameters": [
          {
            "name": "studentId",
            "in": "path",
            "required": true,
            "type": "string",
            "description": "Student ID"
          }
        ],
        "responses": {
          "200": {
            "description": "PNG image"
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "produces": [
          "image/png"
        ]
      }
    },
    "/public/resume/{token}": {
      "get": {
        "tags": [
          "Public"
        ],
        "summary": "Download a shared resume",
        "parameters": [
          {
            "name": "token",
            "in": "path",
            "required": true,
            "type": "string",
            "description": "Signed share token"
          }
        ],
        "responses": {
          "200": {
            "description": "PDF"
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "produces": [
          "application/pdf"
        ]
      }
    },
    "/auth/student/login": {
      "post": {
        "tags": [
          "Auth"
        ],
        "summary": "Student login",
        "parameters": [
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/StudentLoginRequest"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "401": {
            "description": "Invalid credentials"
          },
          "429": {
            "description": "Too many attempts"
          }
        }
      }
    },
    "/auth/admin/login": {
      "post": {
        "tags": [
          "Auth"
        ],
        "summary": "Admin login",
        "parameters": [
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/AdminLoginRequest"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "401": {
            "description": "Invalid credentials"
          },
          "429": {
            "description": "Too many attempts"
          }
        }
      }
    },
    "/auth/logout": {
      "post": {
        "tags": [
          "Auth"
        ],
        "summary": "Logout",
        "responses": {
          "204": {
            "description": "No Content"
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/auth/session": {
      "get": {
        "tags": [
          "Auth"
        ],
        "summary": "Current view and identity",
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    },
    "/admin/dashboard": {
      "get": {
        "tags": [
          "Dashboard"
        ],
        "summary": "Admin menu",
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/admin/dashboard/{tab}": {
      "get": {
        "tags": [
          "Dashboard"
        ],
        "summary": "Admin tab content",
        "parameters": [
          {
            "name": "tab",
            "in": "path",
            "required": true,
            "type": "string",
            "description": "Tab key"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/admin/roster": {
      "get": {
        "tags": [
          "Students"
        ],
        "summary": "Trainee roster",
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/admin/students": {
      "get": {
        "tags": [
          "Students"
        ],
        "summary": "List registrations",
        "parameters": [
          {
            "name": "search",
            "in": "query",
            "type": "string",
            "description": "Name, student ID or email"
          },
          {
            "name": "trainee",
            "in": "query",
            "type": "boolean"
          },
          {
            "name": "status",
            "in": "query",
            "type": "string"
          },
          {
            "name": "course",
            "in": "query",
            "type": "string"
          },
          {
            "name": "batch",
            "in": "query",
            "type": "string"
          },
          {
            "name": "page",
            "in": "query",
            "type": "integer"
          },
          {
            "name": "limit",
            "in": "query",
            "type": "integer"
          },
          {
            "name": "sort",
            "in": "query",
            "type": "string",
            "description": "full_name, student_id, created_at or batch"
          },
          {
            "name": "order",
            "in": "query",
            "type": "string",
            "description": "asc or desc"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      },
      "post": {
        "tags": [
          "Students"
        ],
        "summary": "Create student",
        "parameters": [
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/CreateStudentRequest"
            }
          }
        ],
        "responses": {
          "201": {
            "description": "Created",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "409": {
            "description": "Student ID taken"
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/admin/students/{id}": {
      "get": {
        "tags": [
          "Students"
        ],
        "summary": "Get registration",
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "type": "string",
            "description": "Registration ID"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      },
      "put": {
        "tags": [
          "Students"
        ],
        "summary": "Update registration",
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "type": "string",
            "description": "Registration ID"
          },
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/UpdateStudentRequest"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/admin/overview/{studentId}": {
      "get": {
        "tags": [
          "Dashboard"
        ],
        "summary": "Student overview",
        "parameters": [
          {
            "name": "studentId",
            "in": "path",
            "required": true,
            "type": "string",
            "description": "Student ID"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/admin/attendance": {
      "get": {
        "tags": [
          "Attendance"
        ],
        "summary": "Attendance for a date",
        "parameters": [
          {
            "name": "date",
            "in": "query",
            "type": "string",
            "description": "YYYY-MM-DD, defaults to today"
          },
          {
            "name": "student_id",
            "in": "query",
            "type": "string"
          },
          {
            "name": "status",
            "in": "query",
            "type": "string"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      },
      "post": {
        "tags": [
          "Attendance"
        ],
        "summary": "Mark attendance",
        "parameters": [
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/MarkAttendanceRequest"
            }
          }
        ],
        "responses": {
          "201": {
            "description": "Created",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/admin/attendance/all-present": {
      "post": {
        "tags": [
          "Attendance"
        ],
        "summary": "Mark every trainee present",
        "parameters": [
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/MarkAllPresentRequest"
            }
          }
        ],
        "responses": {
          "201": {
            "description": "Created",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/admin/attendance/{id}": {
      "put": {
        "tags": [
          "Attendance"
        ],
        "summary": "Update a mark",
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "type": "string",
            "description": "Attendance ID"
          },
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/UpdateAttendanceRequest"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      },
      "delete": {
        "tags": [
          "Attendance"
        ],
        "summary": "Delete a mark",
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "type": "string",
            "description": "Attendance ID"
          }
        ],
        "responses": {
          "204": {
            "description": "No Content"
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/admin/fees": {
      "get": {
        "tags": [
          "Fees"
        ],
        "summary": "List fees",
        "parameters": [
          {
            "name": "student_id",
            "in": "query",
            "type": "string"
          },
          {
            "name": "status",
            "in": "query",
            "type": "string",
            "description": "pending, paid, overdue or partial"
          },
          {
            "name": "search",
            "in": "query",
            "type": "string",
            "description": "Student ID or name"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      },
      "post": {
        "tags": [
          "Fees"
        ],
        "summary": "Create fee",
        "parameters": [
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/FeeRequest"
            }
          }
        ],
        "responses": {
          "201": {
            "description": "Created",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/admin/fees/export": {
      "get": {
        "tags": [
          "Fees"
        ],
        "summary": "Export fees",
        "parameters": [
          {
            "name": "format",
            "in": "query",
            "type": "string",
            "description": "csv (default) or pdf"
          },
          {
            "name": "status",
            "in": "query",
            "type": "string"
          },
          {
            "name": "search",
            "in": "query",
            "type": "string"
          }
        ],
        "responses": {
          "200": {
            "description": "Attachment"
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "produces": [
          "text/csv",
          "application/pdf"
        ]
      }
    },
    "/admin/fees/{id}": {
      "put": {
        "tags": [
          "Fees"
        ],
        "summary": "Update fee",
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "type": "string",
            "description": "Fee ID"
          },
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/FeeRequest"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      },
      "delete": {
        "tags": [
          "Fees"
        ],
        "summary": "Delete fee",
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "type": "string",
            "description": "Fee ID"
          }
        ],
        "responses": {
          "204": {
            "description": "No Content"
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/admin/notes": {
      "get": {
        "tags": [
          "Notes"
        ],
        "summary": "List notes",
        "parameters": [
          {
            "name": "student_id",
            "in": "query",
            "type": "string"
          },
          {
            "name": "limit",
            "in": "query",
            "type": "integer",
            "description": "Maximum rows"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      },
      "post": {
        "tags": [
          "Notes"
        ],
        "summary": "Send note",
        "parameters": [
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/SendNoteRequest"
            }
          }
        ],
        "responses": {
          "201": {
            "description": "Created",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/admin/tasks": {
      "get": {
        "tags": [
          "Tasks"
        ],
        "summary": "List tasks",
        "parameters": [
          {
            "name": "student_id",
            "in": "query",
            "type": "string"
          },
          {
            "name": "status",
            "in": "query",
            "type": "string",
            "description": "pending, submitted or completed"
          },
          {
            "name": "limit",
            "in": "query",
            "type": "integer",
            "description": "Maximum rows"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      },
      "post": {
        "tags": [
          "Tasks"
        ],
        "summary": "Assign task",
        "parameters": [
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/AssignTaskRequest"
            }
          }
        ],
        "responses": {
          "201": {
            "description": "Created",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/admin/tasks/{id}/reassign": {
      "post": {
        "tags": [
          "Tasks"
        ],
        "summary": "Reassign task",
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "type": "string",
            "description": "Task ID"
          },
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/Audience"
            }
          }
        ],
        "responses": {
          "201": {
            "description": "Created",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/admin/tasks/{id}/grade": {
      "post": {
        "tags": [
          "Tasks"
        ],
        "summary": "Grade task",
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "type": "string",
            "description": "Task ID"
          },
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/GradeTaskRequest"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "409": {
            "description": "Invalid transition",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/admin/projects": {
      "get": {
        "tags": [
          "Projects"
        ],
        "summary": "List projects",
        "parameters": [
          {
            "name": "student_id",
            "in": "query",
            "type": "string"
          },
          {
            "name": "status",
            "in": "query",
            "type": "string"
          },
          {
            "name": "limit",
            "in": "query",
            "type": "integer",
            "description": "Maximum rows"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      },
      "post": {
        "tags": [
          "Projects"
        ],
        "summary": "Assign project",
        "parameters": [
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/AssignProjectRequest"
            }
          }
        ],
        "responses": {
          "201": {
            "description": "Created",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/admin/projects/{id}/complete": {
      "post": {
        "tags": [
          "Projects"
        ],
        "summary": "Complete project",
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "type": "string",
            "description": "Project ID"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "409": {
            "description": "Invalid transition",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/student/dashboard": {
      "get": {
        "tags": [
          "Dashboard"
        ],
        "summary": "Student menu",
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/student/dashboard/{tab}": {
      "get": {
        "tags": [
          "Dashboard"
        ],
        "summary": "Student tab content",
        "parameters": [
          {
            "name": "tab",
            "in": "path",
            "required": true,
            "type": "string",
            "description": "Tab key"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/student/home": {
      "get": {
        "tags": [
          "Dashboard"
        ],
        "summary": "Student home",
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/student/photo": {
      "put": {
        "tags": [
          "Students"
        ],
        "summary": "Update profile photo",
        "parameters": [
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/UpdatePhotoRequest"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "413": {
            "description": "Photo too large"
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/student/attendance": {
      "get": {
        "tags": [
          "Attendance"
        ],
        "summary": "Own attendance history",
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/student/fees": {
      "get": {
        "tags": [
          "Fees"
        ],
        "summary": "Own fee statement",
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/student/notes": {
      "get": {
        "tags": [
          "Notes"
        ],
        "summary": "Own notes",
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/student/tasks": {
      "get": {
        "tags": [
          "Tasks"
        ],
        "summary": "Own tasks",
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/student/tasks/{id}/submit": {
      "post": {
        "tags": [
          "Tasks"
        ],
        "summary": "Submit task",
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "type": "string",
            "description": "Task ID"
          },
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/SubmitTaskRequest"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "409": {
            "description": "Invalid transition",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/student/projects": {
      "get": {
        "tags": [
          "Projects"
        ],
        "summary": "Own projects",
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/student/projects/{id}/submit": {
      "post": {
        "tags": [
          "Projects"
        ],
        "summary": "Submit project links",
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "type": "string",
            "description": "Project ID"
          },
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/SubmitProjectRequest"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/student/resume": {
      "get": {
        "tags": [
          "Resume"
        ],
        "summary": "Own resume",
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      },
      "put": {
        "tags": [
          "Resume"
        ],
        "summary": "Save resume",
        "parameters": [
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/SaveResumeRequest"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/student/resume/pdf": {
      "get": {
        "tags": [
          "Resume"
        ],
        "summary": "Resume PDF",
        "responses": {
          "200": {
            "description": "PDF"
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "produces": [
          "application/pdf"
        ]
      }
    },
    "/student/resume/share": {
      "post": {
        "tags": [
          "Resume"
        ],
        "summary": "Create share link",
        "responses": {
          "201": {
            "description": "Created",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    }
  },
  "definitions": {
    "RegisterLeadRequest": {
      "type": "object",
      "properties": {
        "full_name": {
          "type": "string"
        },
        "college_name": {
          "type": "string"
        },
        "education_qualification": {
          "type": "string"
        },
        "mobile_number": {
          "type": "string"
        },
        "cgpa": {
          "type": "number"
        },
        "city": {
          "type": "string"
        }
      },
      "required": [
        "full_name",
        "college_name",
        "education_qualification",
        "mobile_number",
        "city"
      ]
    },
    "StudentLoginRequest": {
      "type": "object",
      "properties": {
        "student_id": {
          "type": "string"
        },
        "password": {
          "type": "string"
        }
      },
      "required": [
        "student_id",
        "password"
      ]
    },
    "AdminLoginRequest": {
      "type": "object",
      "properties": {
        "username": {
          "type": "string"
        },
        "password": {
          "type": "string"
        }
      },
      "required": [
        "username",
        "password"
      ]
    },
    "CreateStudentRequest": {
      "type": "object",
      "properties": {
        "student_id": {
          "type": "string"
        },
        "password": {
          "type": "string"
        },
        "full_name": {
          "type": "string"
        },
        "email": {
          "type": "string"
        },
        "mobile_number": {
          "type": "string"
        },
        "course_enrolled": {
          "type": "string"
        },
        "batch_number": {
          "type": "string"
        },
        "status": {
          "type": "string"
        },
        "is_trainee": {
          "type": "boolean"
        }
      },
      "required": [
        "student_id",
        "password",
        "full_name"
      ]
    },
    "UpdateStudentRequest": {
      "type": "object",
      "properties": {
        "student_id": {
          "type": "string"
        },
        "password": {
          "type": "string"
        },
        "full_name": {
          "type": "string"
        },
        "email": {
          "type": "string"
        },
        "mobile_number": {
          "type": "string"
        },
        "course_enrolled": {
          "type": "string"
        },
        "batch_number": {
          "type": "string"
        },
        "status": {
          "type": "string"
        },
        "is_trainee": {
          "type": "boolean"
        }
      },
      "required": [
        "student_id",
        "full_name"
      ]
    },
    "UpdatePhotoRequest": {
      "type": "object",
      "properties": {
        "photo": {
          "type": "string",
          "description": "data URL"
        }
      },
      "required": [
        "photo"
      ]
    },
    "AttendanceEntry": {
      "type": "object",
      "properties": {
        "student_id": {
          "type": "string"
        },
        "status": {
          "type": "string"
        },
        "remarks": {
          "type": "string"
        }
      },
      "required": [
        "student_id"
      ]
    },
    "MarkAttendanceRequest": {
      "type": "object",
      "properties": {
        "date": {
          "type": "string",
          "format": "date"
        },
        "entries": {
          "type": "array",
          "items": {
            "$ref": "#/definitions/AttendanceEntry"
          }
        }
      }
    },
    "MarkAllPresentRequest": {
      "type": "object",
      "properties": {
        "date": {
          "type": "string",
          "format": "date"
        }
      }
    },
    "UpdateAttendanceRequest": {
      "type": "object",
      "properties": {
        "status": {
          "type": "string"
        },
        "remarks": {
          "type": "string"
        }
      },
      "required": [
        "status"
      ]
    },
    "FeeRequest": {
      "type": "object",
      "properties": {
        "student_id": {
          "type": "string"
        },
        "fee_type": {
          "type": "string"
        },
        "amount": {
          "type": "number"
        },
        "paid_amount": {
          "type": "number"
        },
        "due_date": {
          "type": "string",
          "format": "date"
        },
        "paid_date": {
          "type": "string",
          "format": "date"
        },
        "payment_status": {
          "type": "string"
        },
        "payment_method": {
          "type": "string"
        },
        "transaction_id": {
          "type": "string"
        },
        "remarks": {
          "type": "string"
        }
      },
      "required": [
        "student_id",
        "fee_type",
        "amount",
        "payment_status"
      ]
    },
    "Audience": {
      "type": "object",
      "properties": {
        "all_trainees": {
          "type": "boolean"
        },
        "student_ids": {
          "type": "array",
          "items": {
            "type": "string"
          }
        }
      }
    },
    "SendNoteRequest": {
      "type": "object",
      "properties": {
        "all_trainees": {
          "type": "boolean"
        },
        "student_ids": {
          "type": "array",
          "items": {
            "type": "string"
          }
        },
        "title": {
          "type": "string"
        },
        "content": {
          "type": "string"
        },
        "tags": {
          "type": "array",
          "items": {
            "type": "string"
          }
        },
        "date": {
          "type": "string",
          "format": "date"
        }
      },
      "required": [
        "title",
        "content"
      ]
    },
    "AssignTaskRequest": {
      "type": "object",
      "properties": {
        "all_trainees": {
          "type": "boolean"
        },
        "student_ids": {
          "type": "array",
          "items": {
            "type": "string"
          }
        },
        "title": {
          "type": "string"
        },
        "description": {
          "type": "string"
        },
        "due_date": {
          "type": "string",
          "format": "date"
        }
      },
      "required": [
        "title"
      ]
    },
    "SubmitTaskRequest": {
      "type": "object",
      "properties": {
        "submission_link": {
          "type": "string"
        },
        "submission_notes": {
          "type": "string"
        }
      },
      "required": [
        "submission_link"
      ]
    },
    "GradeTaskRequest": {
      "type": "object",
      "properties": {
        "grade": {
          "type": "number"
        },
        "feedback": {
          "type": "string"
        }
      },
      "required": [
        "grade"
      ]
    },
    "AssignProjectRequest": {
      "type": "object",
      "properties": {
        "all_trainees": {
          "type": "boolean"
        },
        "student_ids": {
          "type": "array",
          "items": {
            "type": "string"
          }
        },
        "project_name": {
          "type": "string"
        },
        "description": {
          "type": "string"
        },
        "technologies": {
          "type": "array",
          "items": {
            "type": "string"
          }
        },
        "start_date": {
          "type": "string",
          "format": "date"
        },
        "end_date": {
          "type": "string",
          "format": "date"
        },
        "status": {
          "type": "string"
        }
      },
      "required": [
        "project_name"
      ]
    },
    "SubmitProjectRequest": {
      "type": "object",
      "properties": {
        "github_link": {
          "type": "string"
        },
        "live_link": {
          "type": "string"
        }
      }
    },
    "SaveResumeRequest": {
      "type": "object",
      "properties": {
        "personal_info": {
          "type": "object"
        },
        "skills": {
          "type": "array",
          "items": {
            "type": "string"
          }
        }
      }
    },
    "Pagination": {
      "type": "object",
      "properties": {
        "page": {
          "type": "integer"
        },
        "page_size": {
          "type": "integer"
        },
        "total_count": {
          "type": "integer"
        }
      }
    },
    "APIError": {
      "type": "object",
      "properties": {
        "code": {
          "type": "string"
        },
        "message": {
          "type": "string"
        },
        "status": {
          "type": "integer"
        }
      }
    },
    "ResponseEnvelope": {
      "type": "object",
      "properties": {
        "data": {
          "type": "object"
        },
        "error": {
          "$ref": "#/definitions/APIError"
        },
        "pagination": {
          "$ref": "#/definitions/Pagination"
        },
        "meta": {
          "type": "object"
        }
      }
    }
  }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
